package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/pkg/apperrors"
	"github.com/nipunivithana/cms-backend/internal/pkg/dberrors"
)

// IEnrollmentRepository defines the ledger's storage operations. The
// enrollment service serializes check-then-insert per course, so these
// calls only need single-statement atomicity.
type IEnrollmentRepository interface {
	GetActiveByPair(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	CountEnrolled(ctx context.Context, courseID int64) (int, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus) error
	SetGrade(ctx context.Context, id int64, grade float64, feedback *string, gradedAt time.Time) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error)
}

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

const enrollmentColumns = `id, student_id, course_id, status, enrolled_at, final_grade, feedback, graded_at`

func scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	e := &models.Enrollment{}
	err := row.Scan(
		&e.ID, &e.StudentID, &e.CourseID, &e.Status, &e.EnrolledAt,
		&e.FinalGrade, &e.Feedback, &e.GradedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetActiveByPair retrieves the single non-dropped enrollment for a
// (student, course) pair. Dropped rows are historical and ignored here.
func (r *EnrollmentRepository) GetActiveByPair(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	e, err := scanEnrollment(r.db.QueryRow(ctx, `
		SELECT `+enrollmentColumns+`
		FROM enrollments
		WHERE student_id = $1 AND course_id = $2 AND status <> $3`,
		studentID, courseID, models.EnrollmentDropped))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error getting enrollment: %w", err)
	}
	return e, nil
}

// CountEnrolled counts rows in ENROLLED status for a course. Capacity
// governs concurrently-active seats, so COMPLETED and DROPPED rows are
// excluded.
func (r *EnrollmentRepository) CountEnrolled(ctx context.Context, courseID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM enrollments WHERE course_id = $1 AND status = $2`,
		courseID, models.EnrollmentEnrolled).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}
	return count, nil
}

// CountNonDropped counts all enrollments that still stand, across all
// courses
func (r *EnrollmentRepository) CountNonDropped(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM enrollments WHERE status <> $1`,
		models.EnrollmentDropped).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}
	return count, nil
}

// Create inserts a new enrollment row. The partial unique index on
// (student_id, course_id) WHERE status <> 'DROPPED' backs the ledger's
// uniqueness invariant at the schema level.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO enrollments (student_id, course_id, status, enrolled_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		enrollment.StudentID, enrollment.CourseID, enrollment.Status, enrollment.EnrolledAt).Scan(&enrollment.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_enrollments_active_pair") {
			return apperrors.ErrAlreadyEnrolled
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}
	return nil
}

// UpdateStatus moves an enrollment to a new status
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE enrollments SET status = $2 WHERE id = $1`,
		id, status)
	if err != nil {
		return fmt.Errorf("error updating enrollment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

// SetGrade writes grade, feedback and graded timestamp and moves the
// row to COMPLETED in a single atomic update
func (r *EnrollmentRepository) SetGrade(ctx context.Context, id int64, grade float64, feedback *string, gradedAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE enrollments
		SET final_grade = $2, feedback = $3, graded_at = $4, status = $5
		WHERE id = $1`,
		id, grade, feedback, gradedAt, models.EnrollmentCompleted)
	if err != nil {
		return fmt.Errorf("error setting grade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

// ListByStudent retrieves all enrollments for a student, including
// dropped ones, with course information populated
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.student_id, e.course_id, e.status, e.enrolled_at, e.final_grade, e.feedback, e.graded_at,
		       c.id, c.code, c.title, c.description, c.credits, c.department, c.capacity, c.status, c.lecturer_id, c.degree_id
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.student_id = $1
		ORDER BY e.enrolled_at DESC`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments by student: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		e := &models.Enrollment{Course: &models.Course{}}
		c := e.Course
		if err := rows.Scan(
			&e.ID, &e.StudentID, &e.CourseID, &e.Status, &e.EnrolledAt, &e.FinalGrade, &e.Feedback, &e.GradedAt,
			&c.ID, &c.Code, &c.Title, &c.Description, &c.Credits, &c.Department, &c.Capacity, &c.Status, &c.LecturerID, &c.DegreeID); err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		enrollments = append(enrollments, e)
	}

	return enrollments, rows.Err()
}

// ListByCourse retrieves non-dropped enrollments for a course with
// student information populated (the course roster)
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.student_id, e.course_id, e.status, e.enrolled_at, e.final_grade, e.feedback, e.graded_at,
		       s.id, s.user_id, s.student_number, s.degree_id,
		       u.id, u.email, u.first_name, u.last_name
		FROM enrollments e
		JOIN students s ON s.id = e.student_id
		JOIN users u ON u.id = s.user_id
		WHERE e.course_id = $1 AND e.status <> $2
		ORDER BY u.last_name, u.first_name`,
		courseID, models.EnrollmentDropped)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments by course: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		e := &models.Enrollment{Student: &models.Student{User: &models.User{}}}
		s := e.Student
		u := s.User
		if err := rows.Scan(
			&e.ID, &e.StudentID, &e.CourseID, &e.Status, &e.EnrolledAt, &e.FinalGrade, &e.Feedback, &e.GradedAt,
			&s.ID, &s.UserID, &s.StudentNumber, &s.DegreeID,
			&u.ID, &u.Email, &u.FirstName, &u.LastName); err != nil {
			return nil, fmt.Errorf("error scanning roster row: %w", err)
		}
		enrollments = append(enrollments, e)
	}

	return enrollments, rows.Err()
}
