package dto

import "time"

// SetGradeRequest represents grade entry input. The grade is numeric
// only; letter grades are not accepted.
type SetGradeRequest struct {
	Grade    float64 `json:"grade" binding:"min=0,max=100"`
	Feedback *string `json:"feedback,omitempty"`
}

// GradeView is the graded state of an enrollment. A null view means the
// pair is enrolled but not yet graded.
type GradeView struct {
	Grade    float64   `json:"grade"`
	Feedback *string   `json:"feedback,omitempty"`
	GradedAt time.Time `json:"gradedAt"`
}
