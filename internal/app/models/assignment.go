package models

import "time"

// Assignment belongs to exactly one course.
type Assignment struct {
	ID          int64      `json:"id" db:"id"`
	CourseID    int64      `json:"courseId" db:"course_id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description,omitempty" db:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty" db:"due_date"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// Submission belongs to exactly one (assignment, student) pair, with the
// same single-row uniqueness discipline as enrollments.
type Submission struct {
	ID           int64     `json:"id" db:"id"`
	AssignmentID int64     `json:"assignmentId" db:"assignment_id"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	FilePath     *string   `json:"filePath,omitempty" db:"file_path"`
	Comment      *string   `json:"comment,omitempty" db:"comment"`
	SubmittedAt  time.Time `json:"submittedAt" db:"submitted_at"`
}
