package staff

import "context"

type StaffService interface {
	Create(ctx context.Context, companyID string, req CreateStaffRequest) (*StaffResponse, error)
	List(ctx context.Context, companyID string, filter ListFilter) (*ListStaffResponse, error)
	Get(ctx context.Context, companyID string, staffID string, eventID string) (*StaffResponse, error)

	// CheckIn / CheckOut record attendance; the undo variants clear a
	// timestamp written by mistake without touching the other one.
	CheckIn(ctx context.Context, companyID string, req CheckInRequest) (*StaffResponse, error)
	CheckOut(ctx context.Context, companyID string, req CheckOutRequest) (*StaffResponse, error)
	UndoCheckIn(ctx context.Context, companyID string, req CheckInRequest) (*StaffResponse, error)
	UndoCheckOut(ctx context.Context, companyID string, req CheckOutRequest) (*StaffResponse, error)

	// GenerateQR renders the staff badge PNG. ClaimQR binds a scanned token
	// to the record, enforcing per-shift uniqueness transactionally.
	GenerateQR(ctx context.Context, companyID string, staffID string, eventID string) ([]byte, error)
	ClaimQR(ctx context.Context, companyID string, req ClaimQRRequest) (*StaffResponse, error)

	ToggleFlag(ctx context.Context, companyID string, req ToggleFlagRequest) (*StaffResponse, error)
	TogglePriority(ctx context.Context, companyID string, req TogglePriorityRequest) (*StaffResponse, error)
	BatchUpdate(ctx context.Context, companyID string, req BatchUpdateRequest) (int64, error)

	// Delete soft-deletes a single record, refusing while currently checked in.
	Delete(ctx context.Context, companyID string, staffID string, eventID string) error
}
