package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/rs/zerolog"
	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/app/models/dto"
	"github.com/nipunivithana/cms-backend/internal/app/repositories"
	"github.com/nipunivithana/cms-backend/internal/pkg/filestorage"
)

// MaterialService handles course material uploads and downloads
type MaterialService struct {
	materialRepo *repositories.MaterialRepository
	storage      filestorage.FileStorage
	logger       zerolog.Logger
}

// NewMaterialService creates a new MaterialService
func NewMaterialService(materialRepo *repositories.MaterialRepository, storage filestorage.FileStorage, logger zerolog.Logger) *MaterialService {
	return &MaterialService{
		materialRepo: materialRepo,
		storage:      storage,
		logger:       logger,
	}
}

// Upload stores the file under the course's directory and records it
func (s *MaterialService) Upload(ctx context.Context, courseID int64, req *dto.UploadMaterialRequest, fileHeader *multipart.FileHeader) (*models.CourseMaterial, error) {
	subPath := fmt.Sprintf("materials/course_%d", courseID)
	filePath, err := s.storage.SaveFileWithPath(fileHeader, subPath)
	if err != nil {
		return nil, fmt.Errorf("failed to store material file: %w", err)
	}

	material := &models.CourseMaterial{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		FileName:    fileHeader.Filename,
		FilePath:    filePath,
		FileSize:    fileHeader.Size,
		UploadedAt:  time.Now(),
	}
	if err := s.materialRepo.Create(ctx, material); err != nil {
		// Orphaned file is cleaned up so storage does not drift from the table
		if delErr := s.storage.DeleteFile(filePath); delErr != nil {
			s.logger.Warn().Err(delErr).Str("path", filePath).Msg("Failed to remove orphaned material file")
		}
		return nil, err
	}

	s.logger.Info().Int64("courseID", courseID).Int64("materialID", material.ID).Msg("Course material uploaded")
	return material, nil
}

// Get retrieves one material record
func (s *MaterialService) Get(ctx context.Context, id int64) (*models.CourseMaterial, error) {
	return s.materialRepo.GetByID(ctx, id)
}

// FilePath resolves the material's file to a filesystem path
func (s *MaterialService) FilePath(material *models.CourseMaterial) string {
	return s.storage.GetFullPath(material.FilePath)
}

// ListForCourse returns the materials of a course
func (s *MaterialService) ListForCourse(ctx context.Context, courseID int64) ([]*models.CourseMaterial, error) {
	return s.materialRepo.ListByCourse(ctx, courseID)
}

// Delete removes a material record and its stored file
func (s *MaterialService) Delete(ctx context.Context, id int64) error {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.materialRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeleteFile(material.FilePath); err != nil {
		s.logger.Warn().Err(err).Str("path", material.FilePath).Msg("Failed to delete material file")
	}
	return nil
}
