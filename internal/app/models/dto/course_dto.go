package dto

// CreateCourseRequest represents course creation input
type CreateCourseRequest struct {
	Code        string  `json:"code" binding:"required" example:"CS101"`
	Title       string  `json:"title" binding:"required" example:"Introduction to Computer Science"`
	Description *string `json:"description,omitempty"`
	Credits     int     `json:"credits" binding:"required,min=1,max=30"`
	Department  string  `json:"department" binding:"required"`
	Capacity    *int    `json:"capacity,omitempty"` // Omit for unlimited seats
	LecturerID  *int64  `json:"lecturerId,omitempty"`
	DegreeID    *int64  `json:"degreeId,omitempty"`
}

// UpdateCourseRequest represents course update input
type UpdateCourseRequest struct {
	Code        string  `json:"code" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description,omitempty"`
	Credits     int     `json:"credits" binding:"required,min=1,max=30"`
	Department  string  `json:"department" binding:"required"`
	Capacity    *int    `json:"capacity,omitempty"`
	Status      string  `json:"status" binding:"required,oneof=ACTIVE INACTIVE"`
	LecturerID  *int64  `json:"lecturerId,omitempty"`
	DegreeID    *int64  `json:"degreeId,omitempty"`
}

// AssignLecturerRequest assigns or clears a course's lecturer
type AssignLecturerRequest struct {
	LecturerID *int64 `json:"lecturerId"` // Null clears the assignment
}

// CourseCatalogEntry is a course as shown to students, with seat availability
type CourseCatalogEntry struct {
	ID             int64   `json:"id"`
	Code           string  `json:"code"`
	Title          string  `json:"title"`
	Description    *string `json:"description,omitempty"`
	Credits        int     `json:"credits"`
	Department     string  `json:"department"`
	Capacity       *int    `json:"capacity,omitempty"`
	EnrolledCount  int     `json:"enrolledCount"`
	SeatsAvailable *int    `json:"seatsAvailable,omitempty"` // Null when capacity is unlimited
	LecturerName   *string `json:"lecturerName,omitempty"`
}

// CourseStats is a lecturer's view of one of their courses
type CourseStats struct {
	ID            int64    `json:"id"`
	Code          string   `json:"code"`
	Title         string   `json:"title"`
	Credits       int      `json:"credits"`
	Status        string   `json:"status"`
	EnrolledCount int      `json:"enrolledCount"`
	AverageGrade  *float64 `json:"averageGrade,omitempty"` // Null until someone is graded
}
