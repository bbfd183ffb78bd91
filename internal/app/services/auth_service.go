package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/app/models/dto"
	"github.com/nipunivithana/cms-backend/internal/app/repositories"
	"github.com/nipunivithana/cms-backend/internal/pkg/apperrors"
	"github.com/nipunivithana/cms-backend/internal/pkg/auth"
	"github.com/nipunivithana/cms-backend/internal/pkg/helpers"
	"github.com/nipunivithana/cms-backend/internal/pkg/validation"
)

// AuthService handles authentication and account management
type AuthService struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.IUserRepository, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login verifies the credentials and issues a signed token. Unknown
// email and wrong password both map to ErrInvalidCredentials so the
// response does not reveal which part failed. A deactivated account is
// rejected at lookup, before the password is even compared.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountInactive
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Login still succeeds; the timestamp is informational
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login timestamp")
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User logged in")

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

// Register creates a new account with its role profile
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	role := models.RoleType(req.Role)
	if !role.Valid() {
		return nil, apperrors.NewValidationError("invalid role: " + req.Role)
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	if role == models.RoleStudent {
		if !validation.CompiledPatterns.StudentNumber.MatchString(req.StudentNumber) {
			return nil, apperrors.NewValidationError("studentNumber must be 8 digits")
		}
	}
	if role == models.RoleLecturer && strings.TrimSpace(req.Department) == "" {
		return nil, apperrors.NewValidationError("department is required for lecturers")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:     strings.ToLower(req.Email),
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
		IsActive:  true,
	}
	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	switch role {
	case models.RoleStudent:
		student := &models.Student{
			UserID:        userID,
			StudentNumber: req.StudentNumber,
			DegreeID:      req.DegreeID,
		}
		if err := s.userRepo.CreateStudent(ctx, student); err != nil {
			return nil, err
		}
	case models.RoleLecturer:
		lecturer := &models.Lecturer{
			UserID:     userID,
			Department: req.Department,
		}
		if err := s.userRepo.CreateLecturer(ctx, lecturer); err != nil {
			return nil, err
		}
	}

	s.logger.Info().Int64("userID", userID).Str("role", req.Role).Msg("Account registered")

	return &dto.RegisterResponse{
		UserID: userID,
		Email:  user.Email,
		Role:   req.Role,
	}, nil
}

// GetProfile returns the profile of the given account, including the
// role-specific fields
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProfileResponse{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
	}

	switch user.Role {
	case models.RoleStudent:
		student, err := s.userRepo.GetStudentByUserID(ctx, userID)
		if err == nil {
			resp.StudentNumber = &student.StudentNumber
		} else if !errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, err
		}
	case models.RoleLecturer:
		lecturer, err := s.userRepo.GetLecturerByUserID(ctx, userID)
		if err == nil {
			resp.Department = &lecturer.Department
		} else if !errors.Is(err, apperrors.ErrLecturerNotFound) {
			return nil, err
		}
	}

	return resp, nil
}

// UpdateProfile updates the name fields of the given account
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if err := s.userRepo.UpdateUserName(ctx, user.ID, req.FirstName, req.LastName); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

// SetUserActive activates or deactivates an account. Deactivation takes
// effect on the next login; outstanding tokens stay valid until expiry.
func (s *AuthService) SetUserActive(ctx context.Context, userID int64, active bool) error {
	if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.SetUserActive(ctx, userID, active); err != nil {
		return err
	}
	s.logger.Info().Int64("userID", userID).Bool("active", active).Msg("Account active flag changed")
	return nil
}

// ListUsers returns one page of accounts holding a role
func (s *AuthService) ListUsers(ctx context.Context, role models.RoleType, page, size int) ([]*models.User, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	users, total, err := s.userRepo.ListUsersByRole(ctx, role, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return users, helpers.NewPaginationInfo(total, page, limit), nil
}
