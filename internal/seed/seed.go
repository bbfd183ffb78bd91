package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/nipunivithana/cms-backend/internal/app/models"
	appRepos "github.com/nipunivithana/cms-backend/internal/app/repositories"
	"github.com/nipunivithana/cms-backend/internal/pkg/apperrors"
	pkgAuth "github.com/nipunivithana/cms-backend/internal/pkg/auth"
)

// CreateDefaultData seeds the default admin account and a starter set of
// degrees and courses so a fresh install is immediately usable. Existing
// rows are left alone; the seed is idempotent.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	degreeRepo := appRepos.NewDegreeRepository(dbPool)
	courseRepo := appRepos.NewCourseRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default admin account --- //
	const adminEmail = "admin@cms.local"
	exists, err := userRepo.EmailExists(ctx, adminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking default admin account")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		hashed, hashErr := pkgAuth.HashPassword("admin123")
		if hashErr != nil {
			lgr.Error().Err(hashErr).Msg("Error hashing default admin password")
			finalErr = errors.Join(finalErr, hashErr)
		} else {
			admin := &appModels.User{
				Email:     adminEmail,
				Password:  hashed,
				FirstName: "System",
				LastName:  "Administrator",
				Role:      appModels.RoleAdmin,
				IsActive:  true,
			}
			if _, createErr := userRepo.CreateUser(ctx, admin); createErr != nil {
				lgr.Error().Err(createErr).Msg("Error creating default admin account")
				finalErr = errors.Join(finalErr, createErr)
			} else {
				lgr.Info().Str("email", adminEmail).Msg("Default admin account created")
			}
		}
	}

	// --- Starter degrees --- //
	degreeIDs := map[string]int64{}
	starterDegrees := []*appModels.Degree{
		{Code: "BSC-CS", Name: "BSc Computer Science", Department: "Computer Science"},
		{Code: "BSC-MATH", Name: "BSc Mathematics", Department: "Mathematics"},
	}
	for _, degree := range starterDegrees {
		err := degreeRepo.Create(ctx, degree)
		switch {
		case err == nil:
			degreeIDs[degree.Code] = degree.ID
			lgr.Info().Str("code", degree.Code).Msg("Starter degree created")
		case errors.Is(err, apperrors.ErrDegreeAlreadyExists):
			existing, getErr := degreeRepo.GetAll(ctx)
			if getErr != nil {
				finalErr = errors.Join(finalErr, getErr)
				continue
			}
			for _, d := range existing {
				if d.Code == degree.Code {
					degreeIDs[degree.Code] = d.ID
					break
				}
			}
		default:
			lgr.Error().Err(err).Str("code", degree.Code).Msg("Error creating starter degree")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Starter courses --- //
	capacity := 50
	starterCourses := []*appModels.Course{
		{Code: "CS101", Title: "Introduction to Computer Science", Credits: 6, Department: "Computer Science", Capacity: &capacity, Status: appModels.CourseActive},
		{Code: "CS201", Title: "Data Structures and Algorithms", Credits: 6, Department: "Computer Science", Capacity: &capacity, Status: appModels.CourseActive},
		{Code: "MA101", Title: "Calculus I", Credits: 5, Department: "Mathematics", Capacity: &capacity, Status: appModels.CourseActive},
	}
	for _, course := range starterCourses {
		if degreeID, ok := degreeIDs["BSC-CS"]; ok && course.Department == "Computer Science" {
			course.DegreeID = &degreeID
		}
		if degreeID, ok := degreeIDs["BSC-MATH"]; ok && course.Department == "Mathematics" {
			course.DegreeID = &degreeID
		}

		err := courseRepo.Create(ctx, course)
		switch {
		case err == nil:
			lgr.Info().Str("code", course.Code).Msg("Starter course created")
		case errors.Is(err, apperrors.ErrCourseCodeExists):
			// Already seeded
		default:
			lgr.Error().Err(err).Str("code", course.Code).Msg("Error creating starter course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
