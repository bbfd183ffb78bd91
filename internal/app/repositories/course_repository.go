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

// ICourseRepository defines the interface for course lookups used by the
// authorization and enrollment layers
type ICourseRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

const courseColumns = `id, code, title, description, credits, department, capacity, status, lecturer_id, degree_id`

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(
		&course.ID, &course.Code, &course.Title, &course.Description, &course.Credits,
		&course.Department, &course.Capacity, &course.Status, &course.LecturerID, &course.DegreeID)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// Create inserts a new course. The course code is unique.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM courses WHERE code = $1)`,
		course.Code).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking course code: %w", err)
	}
	if exists {
		return apperrors.ErrCourseCodeExists
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO courses (code, title, description, credits, department, capacity, status, lecturer_id, degree_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		course.Code, course.Title, course.Description, course.Credits, course.Department,
		course.Capacity, course.Status, course.LecturerID, course.DegreeID).Scan(&course.ID)
	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := scanCourse(r.db.QueryRow(ctx, `
		SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	return course, nil
}

// GetByCode retrieves a course by its unique code
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	course, err := scanCourse(r.db.QueryRow(ctx, `
		SELECT `+courseColumns+` FROM courses WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error getting course by code: %w", err)
	}
	return course, nil
}

// GetAll retrieves all courses
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	return r.list(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY code`)
}

// GetActive retrieves all active courses (the student catalog)
func (r *CourseRepository) GetActive(ctx context.Context) ([]*models.Course, error) {
	return r.list(ctx, `SELECT `+courseColumns+` FROM courses WHERE status = $1 ORDER BY code`, models.CourseActive)
}

// GetByLecturerID retrieves courses assigned to a lecturer
func (r *CourseRepository) GetByLecturerID(ctx context.Context, lecturerID int64) ([]*models.Course, error) {
	return r.list(ctx, `SELECT `+courseColumns+` FROM courses WHERE lecturer_id = $1 ORDER BY code`, lecturerID)
}

func (r *CourseRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	return courses, rows.Err()
}

// CountByStatus counts courses, optionally restricted to one status.
// A nil status counts every course.
func (r *CourseRepository) CountByStatus(ctx context.Context, status *models.CourseStatus) (int64, error) {
	var count int64
	var err error
	if status == nil {
		err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count)
	} else {
		err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses WHERE status = $1`, *status).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}

// Update modifies an existing course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE courses
		SET code = $2, title = $3, description = $4, credits = $5, department = $6,
		    capacity = $7, status = $8, lecturer_id = $9, degree_id = $10
		WHERE id = $1`,
		course.ID, course.Code, course.Title, course.Description, course.Credits,
		course.Department, course.Capacity, course.Status, course.LecturerID, course.DegreeID)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// AssignLecturer sets or clears the course's assigned lecturer. The
// assignment is a foreign reference, not ownership; a course may be
// unassigned by passing nil.
func (r *CourseRepository) AssignLecturer(ctx context.Context, courseID int64, lecturerID *int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE courses SET lecturer_id = $2 WHERE id = $1`,
		courseID, lecturerID)
	if err != nil {
		return fmt.Errorf("error assigning lecturer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Delete removes a course. Courses that ever had enrollments cannot be
// deleted; they are set INACTIVE instead by the service layer.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	var hasEnrollments bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM enrollments WHERE course_id = $1)`,
		id).Scan(&hasEnrollments)
	if err != nil {
		return fmt.Errorf("error checking course enrollments: %w", err)
	}
	if hasEnrollments {
		return apperrors.ErrCourseHasRecords
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}
