package staff

import (
	"context"
	"time"
)

// StaffRepository defines data access methods for staff records. Methods that
// participate in multi-step mutations read the transaction from ctx.
type StaffRepository interface {
	Create(ctx context.Context, s Staff) (Staff, error)
	CreateBatch(ctx context.Context, rows []Staff) error
	GetByID(ctx context.Context, id string, eventID string) (Staff, error)
	Update(ctx context.Context, s Staff) error
	List(ctx context.Context, filter ListFilter) ([]Staff, int64, error)

	// SetCheckIn / SetCheckOut write the attendance timestamps.
	SetCheckIn(ctx context.Context, id string, at time.Time) error
	SetCheckOut(ctx context.Context, id string, at time.Time) error
	ClearCheckIn(ctx context.Context, id string) error
	ClearCheckOut(ctx context.Context, id string) error

	// QRCodeInUse reports whether another staff row in the shift already
	// carries the code. Must be called inside the same transaction as the
	// subsequent SetQRCode to close the concurrent-scan race.
	QRCodeInUse(ctx context.Context, shiftID string, code string, excludeStaffID string) (bool, error)
	SetQRCode(ctx context.Context, id string, code string) error

	SetFlagged(ctx context.Context, id string, flagged bool) error
	SetPriority(ctx context.Context, id string, priority bool) error
	BatchUpdate(ctx context.Context, req BatchUpdateRequest) (int64, error)

	// SoftDelete marks a single record removed; it stays queryable for
	// variance reporting.
	SoftDelete(ctx context.Context, id string) error
	SoftDeleteByVendorShift(ctx context.Context, eventID string, vendorID string, shiftID string) (int64, error)

	// ListClosed returns up to limit records for the triple whose attendance
	// state is closed (never touched or fully completed), oldest first.
	ListClosed(ctx context.Context, vendorID, shiftID, positionID string, limit int) ([]Staff, error)
	// CountClosed counts all bulk-removal-eligible records for the triple.
	CountClosed(ctx context.Context, vendorID, shiftID, positionID string) (int, error)
	HardDeleteByIDs(ctx context.Context, ids []string) (int64, error)
}
