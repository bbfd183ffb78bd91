package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")

	// Token errors
	ErrTokenMalformed    = errors.New("malformed token")
	ErrTokenBadSignature = errors.New("invalid token signature")
	ErrTokenExpired      = errors.New("token expired")

	// Authorization errors
	ErrForbiddenRole     = errors.New("role not permitted for this operation")
	ErrForbiddenResource = errors.New("no permission on this resource")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")
)

// Course errors
var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrCourseCodeExists = errors.New("course code already exists")
	ErrCourseHasRecords = errors.New("course has enrollments and cannot be deleted")
	ErrLecturerNotFound = errors.New("lecturer not found")
	ErrStudentNotFound  = errors.New("student not found")
)

// Degree errors
var (
	ErrDegreeNotFound      = errors.New("degree not found")
	ErrDegreeAlreadyExists = errors.New("degree with this name or code already exists")
	ErrDegreeHasCourses    = errors.New("degree has associated courses and cannot be deleted")
)

// Enrollment errors
var (
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrCourseInactive     = errors.New("course is not active")
	ErrCourseFull         = errors.New("course capacity reached")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrInvalidTransition  = errors.New("invalid enrollment status transition")
)

// Grading errors
var (
	ErrInvalidGrade = errors.New("grade must be a number between 0 and 100")
)

// Assignment errors
var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrAlreadySubmitted   = errors.New("assignment already submitted")
	ErrSubmissionNotFound = errors.New("submission not found")
)

// Material errors
var (
	ErrMaterialNotFound = errors.New("course material not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrForbiddenResource,
		Message: message,
	}
}

// NewValidationError creates a new custom error for failed input validation with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target or any error in errList matches err
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
