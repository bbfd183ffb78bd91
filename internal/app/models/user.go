package models

import (
	"time"
)

// User defines the account model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the user
	Email       string     `json:"email" db:"email" example:"student@university.edu"`                       // User's email address (unique, matched case-insensitively)
	Password    string     `json:"-" db:"password"`                                                         // User's hashed password (excluded from JSON)
	FirstName   string     `json:"firstName" db:"first_name" example:"John"`                                // User's first name
	LastName    string     `json:"lastName" db:"last_name" example:"Doe"`                                   // User's last name
	Role        RoleType   `json:"role" db:"role" example:"STUDENT"`                                        // User's role (ADMIN, LECTURER or STUDENT)
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`                                  // Accounts are deactivated, never deleted
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`                // Timestamp when the user was created
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`                // Timestamp when the user was last updated
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2024-04-20T18:00:00Z"` // Timestamp of the last login (nullable)
}

// Student defines the student profile based on the 'students' table
type Student struct {
	ID            int64  `json:"id" db:"id"`
	UserID        int64  `json:"userId" db:"user_id"`
	StudentNumber string `json:"studentNumber" db:"student_number"`
	DegreeID      *int64 `json:"degreeId,omitempty" db:"degree_id"` // Pointer for potential NULL
	User          *User  `json:"user,omitempty"`                    // Relation, no db tag
}

// Lecturer defines the lecturer profile based on the 'lecturers' table
type Lecturer struct {
	ID         int64  `json:"id" db:"id"`
	UserID     int64  `json:"userId" db:"user_id"`
	Department string `json:"department" db:"department"`
	User       *User  `json:"user,omitempty"` // Relation, no db tag
}
