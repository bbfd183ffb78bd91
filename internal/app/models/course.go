package models

// Course represents a course offered within a degree programme. A course
// may be unassigned: the lecturer reference is a foreign key, not
// ownership. Capacity is nullable; absence means unlimited seats.
type Course struct {
	ID          int64        `json:"id" db:"id"`
	Code        string       `json:"code" db:"code"`
	Title       string       `json:"title" db:"title"`
	Description *string      `json:"description,omitempty" db:"description"` // Nullable
	Credits     int          `json:"credits" db:"credits"`
	Department  string       `json:"department" db:"department"`
	Capacity    *int         `json:"capacity,omitempty" db:"capacity"`   // NULL means unlimited
	Status      CourseStatus `json:"status" db:"status"`
	LecturerID  *int64       `json:"lecturerId,omitempty" db:"lecturer_id"` // Nullable
	DegreeID    *int64       `json:"degreeId,omitempty" db:"degree_id"`     // Nullable

	// Relations (populated when needed)
	Lecturer *Lecturer `json:"lecturer,omitempty"`
	Degree   *Degree   `json:"degree,omitempty"`
}
