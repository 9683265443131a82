package position

import "context"

type PositionRepository interface {
	Create(ctx context.Context, position Position) (Position, error)
	GetByID(ctx context.Context, id string) (Position, error)
	// GetByCompanyID returns company-specific positions plus globals.
	GetByCompanyID(ctx context.Context, companyID string) ([]Position, error)
	// GetOrCreateByName is used by bulk uploads; matches company-specific
	// first, then global, and creates a company-scoped position otherwise.
	GetOrCreateByName(ctx context.Context, companyID string, name string) (Position, error)
	Update(ctx context.Context, req UpdatePositionRequest) error
	Delete(ctx context.Context, id string, companyID string) error
}
