package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/app/models/dto"
	"github.com/nipunivithana/cms-backend/internal/app/repositories"
	"github.com/nipunivithana/cms-backend/internal/pkg/apperrors"
	"github.com/nipunivithana/cms-backend/internal/pkg/validation"
)

// CourseService handles course administration and the catalog views
type CourseService struct {
	courseRepo     *repositories.CourseRepository
	userRepo       repositories.IUserRepository
	enrollmentRepo repositories.IEnrollmentRepository
	gradingService *GradingService
	logger         zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo *repositories.CourseRepository, userRepo repositories.IUserRepository, enrollmentRepo repositories.IEnrollmentRepository, gradingService *GradingService, logger zerolog.Logger) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		userRepo:       userRepo,
		enrollmentRepo: enrollmentRepo,
		gradingService: gradingService,
		logger:         logger,
	}
}

// CreateCourse creates a new course. New courses start ACTIVE.
func (s *CourseService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	if !validation.CompiledPatterns.CourseCode.MatchString(req.Code) {
		return nil, apperrors.NewValidationError("course code must look like CS101")
	}
	if req.Capacity != nil && *req.Capacity < 1 {
		return nil, apperrors.NewValidationError("capacity must be at least 1")
	}

	if req.LecturerID != nil {
		if _, err := s.userRepo.GetLecturerByID(ctx, *req.LecturerID); err != nil {
			return nil, err
		}
	}

	course := &models.Course{
		Code:        req.Code,
		Title:       req.Title,
		Description: req.Description,
		Credits:     req.Credits,
		Department:  req.Department,
		Capacity:    req.Capacity,
		Status:      models.CourseActive,
		LecturerID:  req.LecturerID,
		DegreeID:    req.DegreeID,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", course.ID).Str("code", course.Code).Msg("Course created")
	return course, nil
}

// GetCourse retrieves one course by ID
func (s *CourseService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// ListCourses returns every course regardless of status
func (s *CourseService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courseRepo.GetAll(ctx)
}

// UpdateCourse updates a course's fields. Deactivating a course leaves
// existing enrollments untouched; it only blocks new ones.
func (s *CourseService) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !validation.CompiledPatterns.CourseCode.MatchString(req.Code) {
		return nil, apperrors.NewValidationError("course code must look like CS101")
	}
	if req.Capacity != nil && *req.Capacity < 1 {
		return nil, apperrors.NewValidationError("capacity must be at least 1")
	}
	if req.LecturerID != nil {
		if _, err := s.userRepo.GetLecturerByID(ctx, *req.LecturerID); err != nil {
			return nil, err
		}
	}

	course.Code = req.Code
	course.Title = req.Title
	course.Description = req.Description
	course.Credits = req.Credits
	course.Department = req.Department
	course.Capacity = req.Capacity
	course.Status = models.CourseStatus(req.Status)
	course.LecturerID = req.LecturerID
	course.DegreeID = req.DegreeID

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// AssignLecturer sets or clears the course's assigned lecturer
func (s *CourseService) AssignLecturer(ctx context.Context, courseID int64, lecturerID *int64) error {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return err
	}
	if lecturerID != nil {
		if _, err := s.userRepo.GetLecturerByID(ctx, *lecturerID); err != nil {
			return err
		}
	}
	if err := s.courseRepo.AssignLecturer(ctx, courseID, lecturerID); err != nil {
		return err
	}

	s.logger.Info().Int64("courseID", courseID).Msg("Course lecturer assignment changed")
	return nil
}

// DeleteCourse removes a course without enrollment history
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	if _, err := s.courseRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.courseRepo.Delete(ctx, id)
}

// Catalog returns the active courses with live seat availability, as
// shown to students browsing for enrollment
func (s *CourseService) Catalog(ctx context.Context) ([]*dto.CourseCatalogEntry, error) {
	courses, err := s.courseRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]*dto.CourseCatalogEntry, 0, len(courses))
	for _, course := range courses {
		enrolled, err := s.enrollmentRepo.CountEnrolled(ctx, course.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count enrollments for course %d: %w", course.ID, err)
		}

		entry := &dto.CourseCatalogEntry{
			ID:            course.ID,
			Code:          course.Code,
			Title:         course.Title,
			Description:   course.Description,
			Credits:       course.Credits,
			Department:    course.Department,
			Capacity:      course.Capacity,
			EnrolledCount: enrolled,
		}
		if course.Capacity != nil {
			seats := *course.Capacity - enrolled
			if seats < 0 {
				seats = 0
			}
			entry.SeatsAvailable = &seats
		}
		if course.LecturerID != nil {
			lecturer, err := s.userRepo.GetLecturerByID(ctx, *course.LecturerID)
			if err == nil && lecturer.User != nil {
				name := lecturer.User.FirstName + " " + lecturer.User.LastName
				entry.LecturerName = &name
			} else if err != nil && !errors.Is(err, apperrors.ErrLecturerNotFound) {
				return nil, err
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// LecturerCourses returns the courses assigned to a lecturer with
// enrollment counts and grade averages
func (s *CourseService) LecturerCourses(ctx context.Context, lecturerID int64) ([]*dto.CourseStats, error) {
	courses, err := s.courseRepo.GetByLecturerID(ctx, lecturerID)
	if err != nil {
		return nil, err
	}

	stats := make([]*dto.CourseStats, 0, len(courses))
	for _, course := range courses {
		enrolled, err := s.enrollmentRepo.CountEnrolled(ctx, course.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count enrollments for course %d: %w", course.ID, err)
		}
		avg, err := s.gradingService.AverageGrade(ctx, course.ID)
		if err != nil {
			return nil, err
		}
		stats = append(stats, &dto.CourseStats{
			ID:            course.ID,
			Code:          course.Code,
			Title:         course.Title,
			Credits:       course.Credits,
			Status:        string(course.Status),
			EnrolledCount: enrolled,
			AverageGrade:  avg,
		})
	}

	return stats, nil
}
