package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/rs/zerolog"
	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/app/models/dto"
	"github.com/nipunivithana/cms-backend/internal/app/repositories"
	"github.com/nipunivithana/cms-backend/internal/pkg/apperrors"
	"github.com/nipunivithana/cms-backend/internal/pkg/filestorage"
)

// AssignmentService handles assignments and student submissions
type AssignmentService struct {
	assignmentRepo repositories.IAssignmentRepository
	storage        filestorage.FileStorage
	logger         zerolog.Logger
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(assignmentRepo repositories.IAssignmentRepository, storage filestorage.FileStorage, logger zerolog.Logger) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		storage:        storage,
		logger:         logger,
	}
}

// Create adds an assignment to a course
func (s *AssignmentService) Create(ctx context.Context, courseID int64, req *dto.CreateAssignmentRequest) (*models.Assignment, error) {
	assignment := &models.Assignment{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		CreatedAt:   time.Now(),
	}
	if err := s.assignmentRepo.CreateAssignment(ctx, assignment); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", courseID).Int64("assignmentID", assignment.ID).Msg("Assignment created")
	return assignment, nil
}

// Get retrieves one assignment, scoped to its course. An assignment
// reached through a different course's URL reads as absent.
func (s *AssignmentService) Get(ctx context.Context, courseID, id int64) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.GetAssignmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment.CourseID != courseID {
		return nil, apperrors.ErrAssignmentNotFound
	}
	return assignment, nil
}

// ListForCourse returns the assignments of a course
func (s *AssignmentService) ListForCourse(ctx context.Context, courseID int64) ([]*models.Assignment, error) {
	return s.assignmentRepo.ListAssignmentsByCourse(ctx, courseID)
}

// Delete removes an assignment and its submissions
func (s *AssignmentService) Delete(ctx context.Context, courseID, id int64) error {
	if _, err := s.Get(ctx, courseID, id); err != nil {
		return err
	}
	return s.assignmentRepo.DeleteAssignment(ctx, id)
}

// Submit records a student's submission, one per (assignment, student)
// pair. The file is optional; a comment-only submission is valid.
func (s *AssignmentService) Submit(ctx context.Context, courseID, assignmentID, studentID int64, req *dto.SubmitAssignmentRequest, fileHeader *multipart.FileHeader) (*models.Submission, error) {
	if _, err := s.Get(ctx, courseID, assignmentID); err != nil {
		return nil, err
	}

	var filePath *string
	if fileHeader != nil {
		subPath := fmt.Sprintf("submissions/assignment_%d", assignmentID)
		path, err := s.storage.SaveFileWithPath(fileHeader, subPath)
		if err != nil {
			return nil, fmt.Errorf("failed to store submission file: %w", err)
		}
		filePath = &path
	}

	submission := &models.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		FilePath:     filePath,
		Comment:      req.Comment,
		SubmittedAt:  time.Now(),
	}
	if err := s.assignmentRepo.CreateSubmission(ctx, submission); err != nil {
		if filePath != nil {
			if delErr := s.storage.DeleteFile(*filePath); delErr != nil {
				s.logger.Warn().Err(delErr).Str("path", *filePath).Msg("Failed to remove orphaned submission file")
			}
		}
		return nil, err
	}

	s.logger.Info().Int64("assignmentID", assignmentID).Int64("studentID", studentID).Msg("Assignment submitted")
	return submission, nil
}

// GetSubmission returns a student's submission to an assignment
func (s *AssignmentService) GetSubmission(ctx context.Context, courseID, assignmentID, studentID int64) (*models.Submission, error) {
	if _, err := s.Get(ctx, courseID, assignmentID); err != nil {
		return nil, err
	}
	return s.assignmentRepo.GetSubmission(ctx, assignmentID, studentID)
}

// ListSubmissions returns all submissions to an assignment of a course
func (s *AssignmentService) ListSubmissions(ctx context.Context, courseID, assignmentID int64) ([]*models.Submission, error) {
	if _, err := s.Get(ctx, courseID, assignmentID); err != nil {
		return nil, err
	}
	return s.assignmentRepo.ListSubmissionsByAssignment(ctx, assignmentID)
}
