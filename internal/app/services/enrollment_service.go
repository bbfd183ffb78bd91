package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/app/repositories"
	"github.com/nipunivithana/cms-backend/internal/pkg/apperrors"
)

// EnrollmentService owns the authoritative enrollment records. It
// enforces the ledger invariants: at most one non-dropped row per
// (student, course) pair, enrollment only into active courses with a
// free seat, and forward-only status transitions.
type EnrollmentService struct {
	enrollmentRepo repositories.IEnrollmentRepository
	courseRepo     repositories.ICourseRepository
	logger         zerolog.Logger

	// courseLocks serializes the check-then-insert of Enroll per
	// course so a capacity ceiling cannot be oversold by concurrent
	// requests. Reads and single-row updates do not take the lock.
	mu          sync.Mutex
	courseLocks map[int64]*sync.Mutex
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(enrollmentRepo repositories.IEnrollmentRepository, courseRepo repositories.ICourseRepository, logger zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		logger:         logger,
		courseLocks:    make(map[int64]*sync.Mutex),
	}
}

func (s *EnrollmentService) lockCourse(courseID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.courseLocks[courseID]
	if !ok {
		lock = &sync.Mutex{}
		s.courseLocks[courseID] = lock
	}
	return lock
}

// Enroll creates a new ENROLLED row for the (student, course) pair.
// Dropped rows do not block re-enrollment; under concurrent attempts on
// a course with capacity C and E already enrolled, at most max(0, C-E)
// calls succeed and the rest fail with ErrCourseFull.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	lock := s.lockCourse(courseID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.enrollmentRepo.GetActiveByPair(ctx, studentID, courseID)
	if err != nil && !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		return nil, fmt.Errorf("failed to check existing enrollment: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.Status != models.CourseActive {
		return nil, apperrors.ErrCourseInactive
	}

	if course.Capacity != nil {
		enrolled, err := s.enrollmentRepo.CountEnrolled(ctx, courseID)
		if err != nil {
			return nil, fmt.Errorf("failed to count enrollments: %w", err)
		}
		if enrolled >= *course.Capacity {
			return nil, apperrors.ErrCourseFull
		}
	}

	enrollment := &models.Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		Status:     models.EnrollmentEnrolled,
		EnrolledAt: time.Now(),
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("studentID", studentID).
		Int64("courseID", courseID).
		Msg("Student enrolled in course")

	return enrollment, nil
}

// Drop moves an ENROLLED row to DROPPED. Completed enrollments are
// terminal and cannot be dropped; there is no resurrection from DROPPED.
func (s *EnrollmentService) Drop(ctx context.Context, studentID, courseID int64) error {
	enrollment, err := s.enrollmentRepo.GetActiveByPair(ctx, studentID, courseID)
	if err != nil {
		return err
	}

	if enrollment.Status == models.EnrollmentCompleted {
		return apperrors.ErrInvalidTransition
	}

	if err := s.enrollmentRepo.UpdateStatus(ctx, enrollment.ID, models.EnrollmentDropped); err != nil {
		return err
	}

	s.logger.Info().
		Int64("studentID", studentID).
		Int64("courseID", courseID).
		Msg("Student dropped course")

	return nil
}

// ListForStudent returns all enrollments of a student with course info
func (s *EnrollmentService) ListForStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	return s.enrollmentRepo.ListByStudent(ctx, studentID)
}

// ListForCourse returns the non-dropped enrollments of a course with
// student info
func (s *EnrollmentService) ListForCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	return s.enrollmentRepo.ListByCourse(ctx, courseID)
}

// CountActive returns the number of ENROLLED rows for a course. This is
// the figure capacity is checked against: completed and dropped rows do
// not occupy a seat.
func (s *EnrollmentService) CountActive(ctx context.Context, courseID int64) (int, error) {
	return s.enrollmentRepo.CountEnrolled(ctx, courseID)
}
