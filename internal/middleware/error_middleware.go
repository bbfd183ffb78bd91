package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nipunivithana/cms-backend/internal/app/models/dto"
	"github.com/nipunivithana/cms-backend/internal/pkg/apperrors"
)

// HandleAPIError maps application errors to HTTP responses. Controllers
// funnel every service error through here so the error contract stays in
// one place.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrAccountInactive):
		respond(c, http.StatusForbidden, dto.ErrorCodeAccountInactive, "Account is deactivated")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenBadSignature), errors.Is(err, apperrors.ErrTokenMalformed):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")

	// Authorization
	case errors.Is(err, apperrors.ErrForbiddenRole), errors.Is(err, apperrors.ErrForbiddenResource):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")

	// Enrollment
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		respond(c, http.StatusConflict, dto.ErrorCodeAlreadyEnrolled, "Already enrolled in this course")
	case errors.Is(err, apperrors.ErrCourseInactive):
		respond(c, http.StatusConflict, dto.ErrorCodeCourseInactive, "Course is not open for enrollment")
	case errors.Is(err, apperrors.ErrCourseFull):
		respond(c, http.StatusConflict, dto.ErrorCodeCourseFull, "Course capacity reached")
	case errors.Is(err, apperrors.ErrInvalidTransition):
		respond(c, http.StatusConflict, dto.ErrorCodeInvalidTransition, "Enrollment state does not allow this operation")

	// Grading
	case errors.Is(err, apperrors.ErrInvalidGrade):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidGrade, "Grade must be a number between 0 and 100")

	// Conflicts
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already registered")
	case errors.Is(err, apperrors.ErrCourseCodeExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Course code already exists")
	case errors.Is(err, apperrors.ErrDegreeAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Degree already exists")
	case errors.Is(err, apperrors.ErrAlreadySubmitted):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Assignment already submitted")
	case errors.Is(err, apperrors.ErrCourseHasRecords):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceInvalid, "Course has enrollments and cannot be deleted")
	case errors.Is(err, apperrors.ErrDegreeHasCourses):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceInvalid, "Degree has courses and cannot be deleted")

	// Not found
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrLecturerNotFound),
		errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrDegreeNotFound),
		errors.Is(err, apperrors.ErrEnrollmentNotFound),
		errors.Is(err, apperrors.ErrAssignmentNotFound),
		errors.Is(err, apperrors.ErrSubmissionNotFound),
		errors.Is(err, apperrors.ErrMaterialNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respondWithDetail(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found", err)

	// Validation
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respondWithDetail(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed", err)

	default:
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

func respondWithDetail(c *gin.Context, status int, code dto.ErrorCode, message string, err error) {
	detail := dto.NewErrorDetail(code, message)
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		detail = detail.WithDetails(customErr.Message)
	} else {
		detail = detail.WithDetails(err.Error())
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}
