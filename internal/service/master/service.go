package master

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/crewsync/crewsync-backend-go/internal/domain/master/position"
	"github.com/crewsync/crewsync-backend-go/internal/domain/master/vendor"
)

type MasterService interface {
	// Vendor operations
	CreateVendor(ctx context.Context, companyID string, req vendor.CreateVendorRequest) (vendor.VendorResponse, error)
	GetVendor(ctx context.Context, companyID string, id string) (vendor.VendorResponse, error)
	ListVendors(ctx context.Context, companyID string) ([]vendor.VendorResponse, error)
	UpdateVendor(ctx context.Context, req vendor.UpdateVendorRequest) error
	DeleteVendor(ctx context.Context, companyID string, id string) error

	// Position operations
	CreatePosition(ctx context.Context, companyID string, req position.CreatePositionRequest) (position.PositionResponse, error)
	GetPosition(ctx context.Context, companyID string, id string) (position.PositionResponse, error)
	ListPositions(ctx context.Context, companyID string) ([]position.PositionResponse, error)
	UpdatePosition(ctx context.Context, req position.UpdatePositionRequest) error
	DeletePosition(ctx context.Context, companyID string, id string) error
}

type masterServiceImpl struct {
	vendorRepo   vendor.VendorRepository
	positionRepo position.PositionRepository
}

func NewMasterService(vendorRepo vendor.VendorRepository, positionRepo position.PositionRepository) MasterService {
	return &masterServiceImpl{
		vendorRepo:   vendorRepo,
		positionRepo: positionRepo,
	}
}

// ==================== VENDOR OPERATIONS ====================

func (s *masterServiceImpl) CreateVendor(ctx context.Context, companyID string, req vendor.CreateVendorRequest) (vendor.VendorResponse, error) {
	if err := req.Validate(); err != nil {
		return vendor.VendorResponse{}, err
	}

	created, err := s.vendorRepo.Create(ctx, vendor.Vendor{
		CompanyID: companyID,
		Name:      req.Name,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return vendor.VendorResponse{}, vendor.ErrVendorNameExists
		}
		return vendor.VendorResponse{}, err
	}

	return vendorResponse(created), nil
}

func (s *masterServiceImpl) GetVendor(ctx context.Context, companyID string, id string) (vendor.VendorResponse, error) {
	v, err := s.vendorRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return vendor.VendorResponse{}, err
	}
	return vendorResponse(v), nil
}

func (s *masterServiceImpl) ListVendors(ctx context.Context, companyID string) ([]vendor.VendorResponse, error) {
	vendors, err := s.vendorRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]vendor.VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		responses = append(responses, vendorResponse(v))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateVendor(ctx context.Context, req vendor.UpdateVendorRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.vendorRepo.Update(ctx, req); err != nil {
		if isUniqueViolation(err) {
			return vendor.ErrVendorNameExists
		}
		return err
	}
	return nil
}

func (s *masterServiceImpl) DeleteVendor(ctx context.Context, companyID string, id string) error {
	return s.vendorRepo.Delete(ctx, id, companyID)
}

// ==================== POSITION OPERATIONS ====================

func (s *masterServiceImpl) CreatePosition(ctx context.Context, companyID string, req position.CreatePositionRequest) (position.PositionResponse, error) {
	if err := req.Validate(); err != nil {
		return position.PositionResponse{}, err
	}

	created, err := s.positionRepo.Create(ctx, position.Position{
		CompanyID: &companyID,
		Name:      req.Name,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return position.PositionResponse{}, position.ErrPositionNameExists
		}
		return position.PositionResponse{}, err
	}

	return positionResponse(created), nil
}

func (s *masterServiceImpl) GetPosition(ctx context.Context, companyID string, id string) (position.PositionResponse, error) {
	p, err := s.positionRepo.GetByID(ctx, id)
	if err != nil {
		return position.PositionResponse{}, err
	}
	if !p.IsGlobal() && *p.CompanyID != companyID {
		return position.PositionResponse{}, position.ErrUnauthorizedAccess
	}
	return positionResponse(p), nil
}

func (s *masterServiceImpl) ListPositions(ctx context.Context, companyID string) ([]position.PositionResponse, error) {
	positions, err := s.positionRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]position.PositionResponse, 0, len(positions))
	for _, p := range positions {
		responses = append(responses, positionResponse(p))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdatePosition(ctx context.Context, req position.UpdatePositionRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	p, err := s.positionRepo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if p.IsGlobal() {
		return position.ErrGlobalReadOnly
	}

	if err := s.positionRepo.Update(ctx, req); err != nil {
		if isUniqueViolation(err) {
			return position.ErrPositionNameExists
		}
		return err
	}
	return nil
}

func (s *masterServiceImpl) DeletePosition(ctx context.Context, companyID string, id string) error {
	p, err := s.positionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.IsGlobal() {
		return position.ErrGlobalReadOnly
	}

	return s.positionRepo.Delete(ctx, id, companyID)
}

func vendorResponse(v vendor.Vendor) vendor.VendorResponse {
	return vendor.VendorResponse{
		ID:        v.ID,
		CompanyID: v.CompanyID,
		Name:      v.Name,
	}
}

func positionResponse(p position.Position) position.PositionResponse {
	return position.PositionResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		Name:      p.Name,
		IsGlobal:  p.IsGlobal(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
