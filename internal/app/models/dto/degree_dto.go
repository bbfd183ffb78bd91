package dto

// CreateDegreeRequest represents degree creation input
type CreateDegreeRequest struct {
	Code        string  `json:"code" binding:"required" example:"BSC-CS"`
	Name        string  `json:"name" binding:"required" example:"BSc Computer Science"`
	Description *string `json:"description,omitempty"`
	Department  string  `json:"department" binding:"required"`
}

// UpdateDegreeRequest represents degree update input
type UpdateDegreeRequest struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
	Department  string  `json:"department" binding:"required"`
}
