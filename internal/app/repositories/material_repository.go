package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/pkg/apperrors"
)

// MaterialRepository handles course material database operations
type MaterialRepository struct {
	db *pgxpool.Pool
}

// NewMaterialRepository creates a new MaterialRepository
func NewMaterialRepository(db *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// Create inserts a new course material record
func (r *MaterialRepository) Create(ctx context.Context, material *models.CourseMaterial) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO course_materials (course_id, title, description, file_name, file_path, file_size)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, uploaded_at`,
		material.CourseID, material.Title, material.Description,
		material.FileName, material.FilePath, material.FileSize).Scan(&material.ID, &material.UploadedAt)
	if err != nil {
		return fmt.Errorf("error creating course material: %w", err)
	}
	return nil
}

// GetByID retrieves a material record by ID
func (r *MaterialRepository) GetByID(ctx context.Context, id int64) (*models.CourseMaterial, error) {
	material := &models.CourseMaterial{}
	err := r.db.QueryRow(ctx, `
		SELECT id, course_id, title, description, file_name, file_path, file_size, uploaded_at
		FROM course_materials
		WHERE id = $1`,
		id).Scan(&material.ID, &material.CourseID, &material.Title, &material.Description,
		&material.FileName, &material.FilePath, &material.FileSize, &material.UploadedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMaterialNotFound
		}
		return nil, fmt.Errorf("error getting course material: %w", err)
	}

	return material, nil
}

// ListByCourse retrieves all materials of a course
func (r *MaterialRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.CourseMaterial, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, course_id, title, description, file_name, file_path, file_size, uploaded_at
		FROM course_materials
		WHERE course_id = $1
		ORDER BY uploaded_at DESC`,
		courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing course materials: %w", err)
	}
	defer rows.Close()

	var materials []*models.CourseMaterial
	for rows.Next() {
		material := &models.CourseMaterial{}
		if err := rows.Scan(&material.ID, &material.CourseID, &material.Title, &material.Description,
			&material.FileName, &material.FilePath, &material.FileSize, &material.UploadedAt); err != nil {
			return nil, fmt.Errorf("error scanning material row: %w", err)
		}
		materials = append(materials, material)
	}

	return materials, rows.Err()
}

// Delete removes a material record
func (r *MaterialRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM course_materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMaterialNotFound
	}
	return nil
}
