package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/app/models/dto"
	"github.com/nipunivithana/cms-backend/internal/app/repositories"
)

// DashboardService aggregates the role dashboards
type DashboardService struct {
	userRepo       *repositories.UserRepository
	courseRepo     *repositories.CourseRepository
	enrollmentRepo *repositories.EnrollmentRepository
	logger         zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(userRepo *repositories.UserRepository, courseRepo *repositories.CourseRepository, enrollmentRepo *repositories.EnrollmentRepository, logger zerolog.Logger) *DashboardService {
	return &DashboardService{
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

// AdminDashboard collects system-wide totals
func (s *DashboardService) AdminDashboard(ctx context.Context) (*dto.AdminDashboard, error) {
	students, err := s.userRepo.CountUsersByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	lecturers, err := s.userRepo.CountUsersByRole(ctx, models.RoleLecturer)
	if err != nil {
		return nil, err
	}
	totalCourses, err := s.courseRepo.CountByStatus(ctx, nil)
	if err != nil {
		return nil, err
	}
	active := models.CourseActive
	activeCourses, err := s.courseRepo.CountByStatus(ctx, &active)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.enrollmentRepo.CountNonDropped(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AdminDashboard{
		TotalStudents:    students,
		TotalLecturers:   lecturers,
		TotalCourses:     totalCourses,
		ActiveCourses:    activeCourses,
		TotalEnrollments: enrollments,
	}, nil
}

// StudentDashboard summarizes one student's standing. Credits count
// completed courses only; the average covers every graded enrollment.
func (s *DashboardService) StudentDashboard(ctx context.Context, studentID int64) (*dto.StudentDashboard, error) {
	enrollments, err := s.enrollmentRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	dashboard := &dto.StudentDashboard{}
	var gradeSum float64
	var gradeCount int
	for _, e := range enrollments {
		switch e.Status {
		case models.EnrollmentEnrolled:
			dashboard.EnrolledCourses++
		case models.EnrollmentCompleted:
			dashboard.CompletedCourses++
			if e.Course != nil {
				dashboard.TotalCredits += e.Course.Credits
			}
		}
		if e.Status != models.EnrollmentDropped && e.FinalGrade != nil {
			gradeSum += *e.FinalGrade
			gradeCount++
		}
	}
	if gradeCount > 0 {
		avg := gradeSum / float64(gradeCount)
		dashboard.AverageGrade = &avg
	}

	return dashboard, nil
}
