package dto

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"student@university.edu"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn" example:"86400"` // Seconds until expiry
	UserID    int64  `json:"userId" example:"1"`
	Email     string `json:"email" example:"student@university.edu"`
	Role      string `json:"role" example:"STUDENT"`
	FirstName string `json:"firstName" example:"John"`
	LastName  string `json:"lastName" example:"Doe"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role" binding:"required,oneof=ADMIN LECTURER STUDENT"`

	// Student fields
	StudentNumber string `json:"studentNumber,omitempty"`
	DegreeID      *int64 `json:"degreeId,omitempty"`

	// Lecturer fields
	Department string `json:"department,omitempty"`
}

// RegisterResponse represents a successful registration
type RegisterResponse struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// ProfileResponse represents the current account's profile
type ProfileResponse struct {
	UserID        int64   `json:"userId"`
	Email         string  `json:"email"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Role          string  `json:"role"`
	StudentNumber *string `json:"studentNumber,omitempty"`
	Department    *string `json:"department,omitempty"`
}

// UpdateProfileRequest represents a profile update
type UpdateProfileRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}
