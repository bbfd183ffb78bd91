package models

import "time"

// Enrollment ties a student to a course. At most one non-dropped row may
// exist per (student, course) pair at any time; this uniqueness is the
// central invariant of the ledger and is also enforced by a partial
// unique index in the schema.
type Enrollment struct {
	ID         int64            `json:"id" db:"id"`
	StudentID  int64            `json:"studentId" db:"student_id"`
	CourseID   int64            `json:"courseId" db:"course_id"`
	Status     EnrollmentStatus `json:"status" db:"status"`
	EnrolledAt time.Time        `json:"enrolledAt" db:"enrolled_at"`
	FinalGrade *float64         `json:"finalGrade,omitempty" db:"final_grade"` // 0-100, set only at grading
	Feedback   *string          `json:"feedback,omitempty" db:"feedback"`
	GradedAt   *time.Time       `json:"gradedAt,omitempty" db:"graded_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
	Course  *Course  `json:"course,omitempty"`
}
