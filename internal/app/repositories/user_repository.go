package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/pkg/apperrors"
)

// IUserRepository defines the interface for account-related database operations
type IUserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	SetUserActive(ctx context.Context, id int64, active bool) error
	UpdateUserName(ctx context.Context, id int64, firstName, lastName string) error
	UpdateLastLogin(ctx context.Context, id int64) error
	ListUsersByRole(ctx context.Context, role models.RoleType, offset uint64, limit int) ([]*models.User, int64, error)

	CreateStudent(ctx context.Context, student *models.Student) error
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)

	CreateLecturer(ctx context.Context, lecturer *models.Lecturer) error
	GetLecturerByUserID(ctx context.Context, userID int64) (*models.Lecturer, error)
	GetLecturerByID(ctx context.Context, id int64) (*models.Lecturer, error)
}

// UserRepository handles account, student and lecturer database operations
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser creates a new user account
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	exists, err := r.EmailExists(ctx, user.Email)
	if err != nil {
		return 0, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return 0, apperrors.ErrEmailAlreadyExists
	}

	var id int64
	err = r.db.QueryRow(ctx, `
		INSERT INTO users (email, password, first_name, last_name, role, is_active)
		VALUES (LOWER($1), $2, $3, $4, $5, $6)
		RETURNING id`,
		user.Email, user.Password, user.FirstName, user.LastName, user.Role, user.IsActive).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// GetUserByEmail retrieves a user by email. The match is case-insensitive.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password, first_name, last_name, role, is_active, created_at, updated_at, last_login_at
		FROM users
		WHERE email = LOWER($1)`,
		email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password, first_name, last_name, role, is_active, created_at, updated_at, last_login_at
		FROM users
		WHERE id = $1`,
		id).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by id: %w", err)
	}

	return user, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = LOWER($1))`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// SetUserActive activates or deactivates an account. Accounts are never deleted.
func (r *UserRepository) SetUserActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`,
		id, active)
	if err != nil {
		return fmt.Errorf("error updating user active flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateUserName updates the name fields of a user
func (r *UserRepository) UpdateUserName(ctx context.Context, id int64, firstName, lastName string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET first_name = $2, last_name = $3, updated_at = NOW() WHERE id = $1`,
		id, firstName, lastName)
	if err != nil {
		return fmt.Errorf("error updating user name: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin stamps the last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET last_login_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

// ListUsersByRole retrieves one page of users holding a given role,
// together with the total count for that role
func (r *UserRepository) ListUsersByRole(ctx context.Context, role models.RoleType, offset uint64, limit int) ([]*models.User, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, email, password, first_name, last_name, role, is_active, created_at, updated_at, last_login_at
		FROM users
		WHERE role = $1
		ORDER BY id
		OFFSET $2 LIMIT $3`,
		role, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(
			&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
			&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt); err != nil {
			return nil, 0, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}

	return users, total, rows.Err()
}

// CountUsersByRole counts active accounts holding a role
func (r *UserRepository) CountUsersByRole(ctx context.Context, role models.RoleType) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM users WHERE role = $1 AND is_active = TRUE`,
		role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}

// CreateStudent creates a student profile for an existing user
func (r *UserRepository) CreateStudent(ctx context.Context, student *models.Student) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO students (user_id, student_number, degree_id)
		VALUES ($1, $2, $3)
		RETURNING id`,
		student.UserID, student.StudentNumber, student.DegreeID).Scan(&student.ID)
	if err != nil {
		return fmt.Errorf("error creating student profile: %w", err)
	}
	return nil
}

// GetStudentByUserID retrieves a student profile by its account ID
func (r *UserRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	student := &models.Student{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, student_number, degree_id
		FROM students
		WHERE user_id = $1`,
		userID).Scan(&student.ID, &student.UserID, &student.StudentNumber, &student.DegreeID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error getting student by user id: %w", err)
	}

	return student, nil
}

// GetStudentByID retrieves a student profile by its own ID
func (r *UserRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	student := &models.Student{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, student_number, degree_id
		FROM students
		WHERE id = $1`,
		id).Scan(&student.ID, &student.UserID, &student.StudentNumber, &student.DegreeID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error getting student by id: %w", err)
	}

	return student, nil
}

// CreateLecturer creates a lecturer profile for an existing user
func (r *UserRepository) CreateLecturer(ctx context.Context, lecturer *models.Lecturer) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO lecturers (user_id, department)
		VALUES ($1, $2)
		RETURNING id`,
		lecturer.UserID, lecturer.Department).Scan(&lecturer.ID)
	if err != nil {
		return fmt.Errorf("error creating lecturer profile: %w", err)
	}
	return nil
}

// GetLecturerByUserID retrieves a lecturer profile by its account ID
func (r *UserRepository) GetLecturerByUserID(ctx context.Context, userID int64) (*models.Lecturer, error) {
	lecturer := &models.Lecturer{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, department
		FROM lecturers
		WHERE user_id = $1`,
		userID).Scan(&lecturer.ID, &lecturer.UserID, &lecturer.Department)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLecturerNotFound
		}
		return nil, fmt.Errorf("error getting lecturer by user id: %w", err)
	}

	return lecturer, nil
}

// GetLecturerByID retrieves a lecturer profile by its own ID, with the
// owning account populated
func (r *UserRepository) GetLecturerByID(ctx context.Context, id int64) (*models.Lecturer, error) {
	lecturer := &models.Lecturer{User: &models.User{}}
	err := r.db.QueryRow(ctx, `
		SELECT l.id, l.user_id, l.department, u.id, u.email, u.first_name, u.last_name
		FROM lecturers l
		JOIN users u ON u.id = l.user_id
		WHERE l.id = $1`,
		id).Scan(&lecturer.ID, &lecturer.UserID, &lecturer.Department,
		&lecturer.User.ID, &lecturer.User.Email, &lecturer.User.FirstName, &lecturer.User.LastName)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLecturerNotFound
		}
		return nil, fmt.Errorf("error getting lecturer by id: %w", err)
	}

	return lecturer, nil
}
