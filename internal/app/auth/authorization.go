package auth

import (
	"context"
	"errors"

	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/app/repositories"
	"github.com/nipunivithana/cms-backend/internal/pkg/apperrors"
	pkgAuth "github.com/nipunivithana/cms-backend/internal/pkg/auth"
)

// OwnershipCheck is a predicate asserting that the acting identity has a
// legitimate relationship to a specific resource (assigned lecturer,
// enrolled student). It is evaluated only after the role check passes.
type OwnershipCheck func(ctx context.Context) (bool, error)

// AuthorizationService is the single authorization gate composed at the
// boundary of every protected operation. It never mutates state: role
// checks are static per endpoint, ownership is resolved per request
// through read-only repository lookups.
type AuthorizationService struct {
	userRepo       repositories.IUserRepository
	courseRepo     repositories.ICourseRepository
	enrollmentRepo repositories.IEnrollmentRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(
	userRepo repositories.IUserRepository,
	courseRepo repositories.ICourseRepository,
	enrollmentRepo repositories.IEnrollmentRepository,
) *AuthorizationService {
	return &AuthorizationService{
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// Authorize decides allow/deny for validated claims. The role must be in
// allowedRoles; when an ownership check is supplied it must also hold.
// A nil ownership check means the operation is role-gated only.
func (s *AuthorizationService) Authorize(ctx context.Context, claims *pkgAuth.Claims, allowedRoles []models.RoleType, ownership OwnershipCheck) error {
	if claims == nil {
		return apperrors.ErrForbiddenRole
	}

	roleAllowed := false
	for _, role := range allowedRoles {
		if claims.Role == role {
			roleAllowed = true
			break
		}
	}
	if !roleAllowed {
		return apperrors.ErrForbiddenRole
	}

	if ownership == nil {
		return nil
	}

	owns, err := ownership(ctx)
	if err != nil {
		return err
	}
	if !owns {
		return apperrors.ErrForbiddenResource
	}

	return nil
}

// LecturerAssignedToCourse builds an ownership check asserting that the
// user behind the claims is the course's assigned lecturer. Unassigned
// courses are owned by nobody.
func (s *AuthorizationService) LecturerAssignedToCourse(userID, courseID int64) OwnershipCheck {
	return func(ctx context.Context) (bool, error) {
		course, err := s.courseRepo.GetByID(ctx, courseID)
		if err != nil {
			return false, err
		}
		if course.LecturerID == nil {
			return false, nil
		}

		lecturer, err := s.userRepo.GetLecturerByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrLecturerNotFound) {
				return false, nil
			}
			return false, err
		}

		return *course.LecturerID == lecturer.ID, nil
	}
}

// StudentActiveInCourse builds an ownership check asserting that the
// user behind the claims holds an Enrolled or Completed enrollment in
// the course. Dropped enrollments grant nothing.
func (s *AuthorizationService) StudentActiveInCourse(userID, courseID int64) OwnershipCheck {
	return func(ctx context.Context) (bool, error) {
		student, err := s.userRepo.GetStudentByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrStudentNotFound) {
				return false, nil
			}
			return false, err
		}

		enrollment, err := s.enrollmentRepo.GetActiveByPair(ctx, student.ID, courseID)
		if err != nil {
			if errors.Is(err, apperrors.ErrEnrollmentNotFound) {
				return false, nil
			}
			return false, err
		}

		return enrollment.Status.Active(), nil
	}
}

// CourseParticipant builds an ownership check that passes for either the
// assigned lecturer or an actively enrolled student, used by endpoints
// that both roles may reach (course details, materials listing).
func (s *AuthorizationService) CourseParticipant(claims *pkgAuth.Claims, courseID int64) OwnershipCheck {
	return func(ctx context.Context) (bool, error) {
		switch claims.Role {
		case models.RoleLecturer:
			return s.LecturerAssignedToCourse(claims.UserID, courseID)(ctx)
		case models.RoleStudent:
			return s.StudentActiveInCourse(claims.UserID, courseID)(ctx)
		}
		return false, nil
	}
}
