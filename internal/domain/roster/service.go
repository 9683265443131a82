package roster

import (
	"context"

	"github.com/crewsync/crewsync-backend-go/internal/domain/shift"
)

type RosterService interface {
	// Upload resolves pre-parsed shift groups into shift instances and creates
	// all staff records, atomically: any failure leaves nothing behind.
	Upload(ctx context.Context, companyID string, req UploadRequest) (*UploadResult, error)

	// AddOrRemove adjusts head count for a vendor/shift/position triple.
	AddOrRemove(ctx context.Context, companyID string, req AddOrRemoveRequest) (*AddOrRemoveResult, error)

	// ClearVendorShift soft-deletes every live staff record a vendor holds on
	// a shift, returning how many were removed.
	ClearVendorShift(ctx context.Context, companyID string, eventID string, vendorID string, shiftID string) (int64, error)

	// ListShifts returns the event's shifts with live staff counts.
	ListShifts(ctx context.Context, companyID string, eventID string) ([]shift.ShiftResponse, error)
}
