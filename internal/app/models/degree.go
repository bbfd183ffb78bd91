package models

// Degree represents a degree programme that groups courses.
type Degree struct {
	ID          int64   `json:"id" db:"id"`
	Code        string  `json:"code" db:"code"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"` // Nullable
	Department  string  `json:"department" db:"department"`
}
