package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/app/models/dto"
	"github.com/nipunivithana/cms-backend/internal/app/repositories"
)

// DegreeService handles degree programme administration
type DegreeService struct {
	degreeRepo *repositories.DegreeRepository
	logger     zerolog.Logger
}

// NewDegreeService creates a new DegreeService
func NewDegreeService(degreeRepo *repositories.DegreeRepository, logger zerolog.Logger) *DegreeService {
	return &DegreeService{
		degreeRepo: degreeRepo,
		logger:     logger,
	}
}

// CreateDegree creates a new degree programme
func (s *DegreeService) CreateDegree(ctx context.Context, req *dto.CreateDegreeRequest) (*models.Degree, error) {
	degree := &models.Degree{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Department:  req.Department,
	}
	if err := s.degreeRepo.Create(ctx, degree); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("degreeID", degree.ID).Str("code", degree.Code).Msg("Degree created")
	return degree, nil
}

// GetDegree retrieves one degree by ID
func (s *DegreeService) GetDegree(ctx context.Context, id int64) (*models.Degree, error) {
	return s.degreeRepo.GetByID(ctx, id)
}

// ListDegrees returns all degree programmes
func (s *DegreeService) ListDegrees(ctx context.Context) ([]*models.Degree, error) {
	return s.degreeRepo.GetAll(ctx)
}

// UpdateDegree updates a degree's fields
func (s *DegreeService) UpdateDegree(ctx context.Context, id int64, req *dto.UpdateDegreeRequest) (*models.Degree, error) {
	degree, err := s.degreeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	degree.Code = req.Code
	degree.Name = req.Name
	degree.Description = req.Description
	degree.Department = req.Department

	if err := s.degreeRepo.Update(ctx, degree); err != nil {
		return nil, err
	}
	return degree, nil
}

// DeleteDegree removes a degree that has no courses attached
func (s *DegreeService) DeleteDegree(ctx context.Context, id int64) error {
	if _, err := s.degreeRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.degreeRepo.Delete(ctx, id)
}
