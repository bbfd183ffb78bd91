package dto

import "time"

// CreateAssignmentRequest represents assignment creation input
type CreateAssignmentRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// SubmitAssignmentRequest represents a student's submission
type SubmitAssignmentRequest struct {
	Comment *string `json:"comment,omitempty"`
}
