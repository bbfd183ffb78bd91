package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories combines all application repositories
type Repositories struct {
	UserRepository       *UserRepository
	DegreeRepository     *DegreeRepository
	CourseRepository     *CourseRepository
	EnrollmentRepository *EnrollmentRepository
	MaterialRepository   *MaterialRepository
	AssignmentRepository *AssignmentRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		DegreeRepository:     NewDegreeRepository(db),
		CourseRepository:     NewCourseRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		MaterialRepository:   NewMaterialRepository(db),
		AssignmentRepository: NewAssignmentRepository(db),
	}
}
