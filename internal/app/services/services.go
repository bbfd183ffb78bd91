package services

import (
	"github.com/rs/zerolog"
	"github.com/nipunivithana/cms-backend/internal/app/repositories"
	"github.com/nipunivithana/cms-backend/internal/pkg/auth"
	"github.com/nipunivithana/cms-backend/internal/pkg/filestorage"
)

// Services combines all application services
type Services struct {
	AuthService       *AuthService
	DegreeService     *DegreeService
	CourseService     *CourseService
	EnrollmentService *EnrollmentService
	GradingService    *GradingService
	MaterialService   *MaterialService
	AssignmentService *AssignmentService
	DashboardService  *DashboardService
}

// NewServices wires all services onto the shared repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, storage filestorage.FileStorage, logger zerolog.Logger) *Services {
	gradingService := NewGradingService(repos.EnrollmentRepository, logger)

	return &Services{
		AuthService:       NewAuthService(repos.UserRepository, jwtService, logger),
		DegreeService:     NewDegreeService(repos.DegreeRepository, logger),
		CourseService:     NewCourseService(repos.CourseRepository, repos.UserRepository, repos.EnrollmentRepository, gradingService, logger),
		EnrollmentService: NewEnrollmentService(repos.EnrollmentRepository, repos.CourseRepository, logger),
		GradingService:    gradingService,
		MaterialService:   NewMaterialService(repos.MaterialRepository, storage, logger),
		AssignmentService: NewAssignmentService(repos.AssignmentRepository, storage, logger),
		DashboardService:  NewDashboardService(repos.UserRepository, repos.CourseRepository, repos.EnrollmentRepository, logger),
	}
}
