package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin    RoleType = "ADMIN"
	RoleLecturer RoleType = "LECTURER"
	RoleStudent  RoleType = "STUDENT"
)

// Valid reports whether the role is one of the known roles
func (r RoleType) Valid() bool {
	switch r {
	case RoleAdmin, RoleLecturer, RoleStudent:
		return true
	}
	return false
}

// CourseStatus defines the lifecycle state of a course
type CourseStatus string

const (
	CourseActive   CourseStatus = "ACTIVE"
	CourseInactive CourseStatus = "INACTIVE"
)

// EnrollmentStatus defines the state of an enrollment row.
// ENROLLED is the only initial state; DROPPED and COMPLETED are terminal.
type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "ENROLLED"
	EnrollmentDropped   EnrollmentStatus = "DROPPED"
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
)

// Active reports whether the enrollment currently ties the student to the
// course. Dropped rows do not block re-enrollment.
func (s EnrollmentStatus) Active() bool {
	return s == EnrollmentEnrolled || s == EnrollmentCompleted
}
