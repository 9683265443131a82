package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/crewsync/crewsync-backend-go/internal/domain/master/position"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type positionRepositoryImpl struct {
	db *database.DB
}

func NewPositionRepository(db *database.DB) position.PositionRepository {
	return &positionRepositoryImpl{db: db}
}

// Create implements position.PositionRepository.
func (r *positionRepositoryImpl) Create(ctx context.Context, p position.Position) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO positions (id, company_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, company_id, name, created_at, updated_at
	`

	var result position.Position
	err := q.QueryRow(ctx, query, uuid.NewString(), p.CompanyID, p.Name).Scan(
		&result.ID,
		&result.CompanyID,
		&result.Name,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err != nil {
		return position.Position{}, fmt.Errorf("failed to create position: %w", err)
	}

	return result, nil
}

// GetByID implements position.PositionRepository.
func (r *positionRepositoryImpl) GetByID(ctx context.Context, id string) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM positions
		WHERE id = $1
	`

	var result position.Position
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.CompanyID,
		&result.Name,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return position.Position{}, position.ErrPositionNotFound
		}
		return position.Position{}, fmt.Errorf("failed to get position: %w", err)
	}

	return result, nil
}

// GetByCompanyID implements position.PositionRepository.
// Returns company-specific positions plus globals (company_id IS NULL).
func (r *positionRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM positions
		WHERE company_id = $1 OR company_id IS NULL
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get positions: %w", err)
	}
	defer rows.Close()

	var positions []position.Position
	for rows.Next() {
		var p position.Position
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}

	return positions, rows.Err()
}

// GetOrCreateByName implements position.PositionRepository.
// Company-specific positions shadow globals of the same name.
func (r *positionRepositoryImpl) GetOrCreateByName(ctx context.Context, companyID string, name string) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM positions
		WHERE (company_id = $1 OR company_id IS NULL) AND LOWER(name) = LOWER($2)
		ORDER BY company_id NULLS LAST
		LIMIT 1
	`

	var result position.Position
	err := q.QueryRow(ctx, query, companyID, name).Scan(
		&result.ID,
		&result.CompanyID,
		&result.Name,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err == nil {
		return result, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return position.Position{}, fmt.Errorf("failed to look up position by name: %w", err)
	}

	return r.Create(ctx, position.Position{CompanyID: &companyID, Name: name})
}

// Update implements position.PositionRepository.
// Global positions are read-only through this path.
func (r *positionRepositoryImpl) Update(ctx context.Context, req position.UpdatePositionRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE positions
		SET name = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3
	`

	tag, err := q.Exec(ctx, query, req.Name, req.ID, req.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return position.ErrPositionNotFound
	}

	return nil
}

// Delete implements position.PositionRepository.
func (r *positionRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM positions
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return position.ErrPositionNotFound
	}

	return nil
}
