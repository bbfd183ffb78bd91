package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/app/models/dto"
	"github.com/nipunivithana/cms-backend/internal/app/repositories"
	"github.com/nipunivithana/cms-backend/internal/pkg/apperrors"
	"github.com/nipunivithana/cms-backend/internal/pkg/validation"
)

// GradingService records and reads final grades on top of the
// enrollment ledger
type GradingService struct {
	enrollmentRepo repositories.IEnrollmentRepository
	logger         zerolog.Logger
}

// NewGradingService creates a new GradingService
func NewGradingService(enrollmentRepo repositories.IEnrollmentRepository, logger zerolog.Logger) *GradingService {
	return &GradingService{
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

// SetGrade validates and writes a numeric grade with feedback onto the
// enrollment of the (student, course) pair, moving the row to
// COMPLETED. Re-grading a completed row overwrites grade, feedback and
// graded timestamp. Validation failures leave prior state untouched.
func (s *GradingService) SetGrade(ctx context.Context, courseID, studentID int64, grade float64, feedback *string) error {
	if !validation.ValidGrade(grade) {
		return apperrors.ErrInvalidGrade
	}

	enrollment, err := s.enrollmentRepo.GetActiveByPair(ctx, studentID, courseID)
	if err != nil {
		return err
	}

	if err := s.enrollmentRepo.SetGrade(ctx, enrollment.ID, grade, feedback, time.Now()); err != nil {
		return err
	}

	s.logger.Info().
		Int64("studentID", studentID).
		Int64("courseID", courseID).
		Float64("grade", grade).
		Msg("Grade recorded")

	return nil
}

// GetGrade returns the graded state of the (student, course) pair. A
// nil view with nil error means the pair is enrolled but not yet
// graded; a missing enrollment is an error.
func (s *GradingService) GetGrade(ctx context.Context, courseID, studentID int64) (*dto.GradeView, error) {
	enrollment, err := s.enrollmentRepo.GetActiveByPair(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	if enrollment.FinalGrade == nil {
		return nil, nil
	}

	view := &dto.GradeView{
		Grade:    *enrollment.FinalGrade,
		Feedback: enrollment.Feedback,
	}
	if enrollment.GradedAt != nil {
		view.GradedAt = *enrollment.GradedAt
	}
	return view, nil
}

// AverageGrade computes the mean of graded, non-dropped enrollments of
// a course; nil when nobody has been graded yet
func (s *GradingService) AverageGrade(ctx context.Context, courseID int64) (*float64, error) {
	enrollments, err := s.enrollmentRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	var sum float64
	var count int
	for _, e := range enrollments {
		if e.Status != models.EnrollmentDropped && e.FinalGrade != nil {
			sum += *e.FinalGrade
			count++
		}
	}
	if count == 0 {
		return nil, nil
	}

	avg := sum / float64(count)
	return &avg, nil
}
