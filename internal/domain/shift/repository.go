package shift

import "context"

type ShiftRepository interface {
	Create(ctx context.Context, shift Shift) (Shift, error)
	GetByID(ctx context.Context, id string, eventID string) (Shift, error)
	// ListByEvent returns shifts ordered by start date, each with its live
	// (non-deleted) staff count attached.
	ListByEvent(ctx context.Context, eventID string) ([]Shift, error)
	// ListWindows returns every persisted (start, end) window for the event,
	// keyed by shift id, for upload deduplication.
	ListWindows(ctx context.Context, eventID string) ([]Shift, error)
	// DeleteIfEmpty removes the shift when no staff rows (deleted or not)
	// reference it, reporting whether a delete happened.
	DeleteIfEmpty(ctx context.Context, id string) (bool, error)
}
