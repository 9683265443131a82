package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/crewsync/crewsync-backend-go/internal/domain/master/vendor"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type vendorRepositoryImpl struct {
	db *database.DB
}

func NewVendorRepository(db *database.DB) vendor.VendorRepository {
	return &vendorRepositoryImpl{db: db}
}

// Create implements vendor.VendorRepository.
func (r *vendorRepositoryImpl) Create(ctx context.Context, v vendor.Vendor) (vendor.Vendor, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO vendors (id, company_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, company_id, name, created_at, updated_at
	`

	var result vendor.Vendor
	err := q.QueryRow(ctx, query, uuid.NewString(), v.CompanyID, v.Name).Scan(
		&result.ID,
		&result.CompanyID,
		&result.Name,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err != nil {
		return vendor.Vendor{}, fmt.Errorf("failed to create vendor: %w", err)
	}

	return result, nil
}

// GetByID implements vendor.VendorRepository.
func (r *vendorRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (vendor.Vendor, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM vendors
		WHERE id = $1 AND company_id = $2
	`

	var result vendor.Vendor
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&result.ID,
		&result.CompanyID,
		&result.Name,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return vendor.Vendor{}, vendor.ErrVendorNotFound
		}
		return vendor.Vendor{}, fmt.Errorf("failed to get vendor: %w", err)
	}

	return result, nil
}

// GetByCompanyID implements vendor.VendorRepository.
func (r *vendorRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]vendor.Vendor, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM vendors
		WHERE company_id = $1
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vendors: %w", err)
	}
	defer rows.Close()

	var vendors []vendor.Vendor
	for rows.Next() {
		var v vendor.Vendor
		if err := rows.Scan(&v.ID, &v.CompanyID, &v.Name, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}

	return vendors, rows.Err()
}

// GetOrCreateByName implements vendor.VendorRepository.
func (r *vendorRepositoryImpl) GetOrCreateByName(ctx context.Context, companyID string, name string) (vendor.Vendor, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM vendors
		WHERE company_id = $1 AND LOWER(name) = LOWER($2)
	`

	var result vendor.Vendor
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
		return vendor.Vendor{}, fmt.Errorf("failed to look up vendor by name: %w", err)
	}

	return r.Create(ctx, vendor.Vendor{CompanyID: companyID, Name: name})
}

// Update implements vendor.VendorRepository.
func (r *vendorRepositoryImpl) Update(ctx context.Context, req vendor.UpdateVendorRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE vendors
		SET name = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3
	`

	tag, err := q.Exec(ctx, query, req.Name, req.ID, req.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to update vendor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return vendor.ErrVendorNotFound
	}

	return nil
}

// Delete implements vendor.VendorRepository.
func (r *vendorRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM vendors
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete vendor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return vendor.ErrVendorNotFound
	}

	return nil
}
