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

// DegreeRepository handles degree database operations
type DegreeRepository struct {
	db *pgxpool.Pool
}

// NewDegreeRepository creates a new DegreeRepository
func NewDegreeRepository(db *pgxpool.Pool) *DegreeRepository {
	return &DegreeRepository{db: db}
}

// Create inserts a new degree
func (r *DegreeRepository) Create(ctx context.Context, degree *models.Degree) error {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM degrees WHERE code = $1 OR name = $2)`,
		degree.Code, degree.Name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking degree uniqueness: %w", err)
	}
	if exists {
		return apperrors.ErrDegreeAlreadyExists
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO degrees (code, name, description, department)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		degree.Code, degree.Name, degree.Description, degree.Department).Scan(&degree.ID)
	if err != nil {
		return fmt.Errorf("error creating degree: %w", err)
	}
	return nil
}

// GetByID retrieves a degree by ID
func (r *DegreeRepository) GetByID(ctx context.Context, id int64) (*models.Degree, error) {
	degree := &models.Degree{}
	err := r.db.QueryRow(ctx, `
		SELECT id, code, name, description, department
		FROM degrees
		WHERE id = $1`,
		id).Scan(&degree.ID, &degree.Code, &degree.Name, &degree.Description, &degree.Department)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDegreeNotFound
		}
		return nil, fmt.Errorf("error getting degree: %w", err)
	}

	return degree, nil
}

// GetAll retrieves all degrees
func (r *DegreeRepository) GetAll(ctx context.Context) ([]*models.Degree, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, code, name, description, department
		FROM degrees
		ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("error listing degrees: %w", err)
	}
	defer rows.Close()

	var degrees []*models.Degree
	for rows.Next() {
		degree := &models.Degree{}
		if err := rows.Scan(&degree.ID, &degree.Code, &degree.Name, &degree.Description, &degree.Department); err != nil {
			return nil, fmt.Errorf("error scanning degree row: %w", err)
		}
		degrees = append(degrees, degree)
	}

	return degrees, rows.Err()
}

// Update modifies an existing degree
func (r *DegreeRepository) Update(ctx context.Context, degree *models.Degree) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE degrees SET code = $2, name = $3, description = $4, department = $5
		WHERE id = $1`,
		degree.ID, degree.Code, degree.Name, degree.Description, degree.Department)
	if err != nil {
		return fmt.Errorf("error updating degree: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDegreeNotFound
	}
	return nil
}

// Delete removes a degree. Degrees with associated courses cannot be deleted.
func (r *DegreeRepository) Delete(ctx context.Context, id int64) error {
	var hasCourses bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM courses WHERE degree_id = $1)`,
		id).Scan(&hasCourses)
	if err != nil {
		return fmt.Errorf("error checking degree courses: %w", err)
	}
	if hasCourses {
		return apperrors.ErrDegreeHasCourses
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM degrees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting degree: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDegreeNotFound
	}
	return nil
}
