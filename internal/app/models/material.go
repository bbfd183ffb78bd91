package models

import "time"

// CourseMaterial is a file uploaded by the course's assigned lecturer.
// Rows are durable records; the file body lives in local storage.
type CourseMaterial struct {
	ID          int64     `json:"id" db:"id"`
	CourseID    int64     `json:"courseId" db:"course_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	FileName    string    `json:"fileName" db:"file_name"`
	FilePath    string    `json:"-" db:"file_path"`
	FileSize    int64     `json:"fileSize" db:"file_size"`
	UploadedAt  time.Time `json:"uploadedAt" db:"uploaded_at"`
}
