package dto

import "time"

// EnrollRequest represents a student's enrollment request
type EnrollRequest struct {
	CourseID int64 `json:"courseId" binding:"required"`
}

// EnrollmentView is an enrollment as shown to the student, with course info
type EnrollmentView struct {
	ID         int64      `json:"id"`
	CourseID   int64      `json:"courseId"`
	CourseCode string     `json:"courseCode"`
	CourseName string     `json:"courseName"`
	Credits    int        `json:"credits"`
	Status     string     `json:"status"`
	EnrolledAt time.Time  `json:"enrolledAt"`
	FinalGrade *float64   `json:"finalGrade,omitempty"`
	Feedback   *string    `json:"feedback,omitempty"`
	GradedAt   *time.Time `json:"gradedAt,omitempty"`
}

// RosterEntry is an enrollment as shown to the lecturer, with student info
type RosterEntry struct {
	EnrollmentID  int64      `json:"enrollmentId"`
	StudentID     int64      `json:"studentId"`
	StudentNumber string     `json:"studentNumber"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Email         string     `json:"email"`
	Status        string     `json:"status"`
	EnrolledAt    time.Time  `json:"enrolledAt"`
	FinalGrade    *float64   `json:"finalGrade,omitempty"`
	GradedAt      *time.Time `json:"gradedAt,omitempty"`
}
