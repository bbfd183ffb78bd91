package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/pkg/apperrors"
	"github.com/nipunivithana/cms-backend/internal/pkg/dberrors"
)

// IAssignmentRepository defines the assignment persistence operations
// consumed by services
type IAssignmentRepository interface {
	CreateAssignment(ctx context.Context, assignment *models.Assignment) error
	GetAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error)
	ListAssignmentsByCourse(ctx context.Context, courseID int64) ([]*models.Assignment, error)
	DeleteAssignment(ctx context.Context, id int64) error
	GetSubmission(ctx context.Context, assignmentID, studentID int64) (*models.Submission, error)
	CreateSubmission(ctx context.Context, submission *models.Submission) error
	ListSubmissionsByAssignment(ctx context.Context, assignmentID int64) ([]*models.Submission, error)
}

// AssignmentRepository handles assignment and submission database operations
type AssignmentRepository struct {
	db *pgxpool.Pool
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// CreateAssignment inserts a new assignment for a course
func (r *AssignmentRepository) CreateAssignment(ctx context.Context, assignment *models.Assignment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO assignments (course_id, title, description, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		assignment.CourseID, assignment.Title, assignment.Description, assignment.DueDate).
		Scan(&assignment.ID, &assignment.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating assignment: %w", err)
	}
	return nil
}

// GetAssignmentByID retrieves an assignment by ID
func (r *AssignmentRepository) GetAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error) {
	assignment := &models.Assignment{}
	err := r.db.QueryRow(ctx, `
		SELECT id, course_id, title, description, due_date, created_at
		FROM assignments
		WHERE id = $1`,
		id).Scan(&assignment.ID, &assignment.CourseID, &assignment.Title,
		&assignment.Description, &assignment.DueDate, &assignment.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error getting assignment: %w", err)
	}

	return assignment, nil
}

// ListAssignmentsByCourse retrieves all assignments of a course
func (r *AssignmentRepository) ListAssignmentsByCourse(ctx context.Context, courseID int64) ([]*models.Assignment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, course_id, title, description, due_date, created_at
		FROM assignments
		WHERE course_id = $1
		ORDER BY created_at DESC`,
		courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.Assignment
	for rows.Next() {
		assignment := &models.Assignment{}
		if err := rows.Scan(&assignment.ID, &assignment.CourseID, &assignment.Title,
			&assignment.Description, &assignment.DueDate, &assignment.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning assignment row: %w", err)
		}
		assignments = append(assignments, assignment)
	}

	return assignments, rows.Err()
}

// DeleteAssignment removes an assignment and its submissions
func (r *AssignmentRepository) DeleteAssignment(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

// GetSubmission retrieves the submission of a student for an assignment
func (r *AssignmentRepository) GetSubmission(ctx context.Context, assignmentID, studentID int64) (*models.Submission, error) {
	submission := &models.Submission{}
	err := r.db.QueryRow(ctx, `
		SELECT id, assignment_id, student_id, file_path, comment, submitted_at
		FROM submissions
		WHERE assignment_id = $1 AND student_id = $2`,
		assignmentID, studentID).Scan(&submission.ID, &submission.AssignmentID, &submission.StudentID,
		&submission.FilePath, &submission.Comment, &submission.SubmittedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("error getting submission: %w", err)
	}

	return submission, nil
}

// CreateSubmission inserts a submission. The (assignment, student) pair
// is unique, enforced the same way as enrollment uniqueness.
func (r *AssignmentRepository) CreateSubmission(ctx context.Context, submission *models.Submission) error {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM submissions WHERE assignment_id = $1 AND student_id = $2)`,
		submission.AssignmentID, submission.StudentID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking submission: %w", err)
	}
	if exists {
		return apperrors.ErrAlreadySubmitted
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO submissions (assignment_id, student_id, file_path, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, submitted_at`,
		submission.AssignmentID, submission.StudentID, submission.FilePath, submission.Comment).
		Scan(&submission.ID, &submission.SubmittedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "submissions_assignment_id_student_id_key") {
			return apperrors.ErrAlreadySubmitted
		}
		return fmt.Errorf("error creating submission: %w", err)
	}
	return nil
}

// ListSubmissionsByAssignment retrieves all submissions for an assignment
func (r *AssignmentRepository) ListSubmissionsByAssignment(ctx context.Context, assignmentID int64) ([]*models.Submission, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, assignment_id, student_id, file_path, comment, submitted_at
		FROM submissions
		WHERE assignment_id = $1
		ORDER BY submitted_at`,
		assignmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*models.Submission
	for rows.Next() {
		submission := &models.Submission{}
		if err := rows.Scan(&submission.ID, &submission.AssignmentID, &submission.StudentID,
			&submission.FilePath, &submission.Comment, &submission.SubmittedAt); err != nil {
			return nil, fmt.Errorf("error scanning submission row: %w", err)
		}
		submissions = append(submissions, submission)
	}

	return submissions, rows.Err()
}
