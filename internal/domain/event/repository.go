package event

import "context"

// EventRepository defines data access methods for events.
// All methods include companyID to prevent cross-company data access.
type EventRepository interface {
	// GetByID retrieves an event with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Event, error)

	// GetTimezone returns the event's IANA timezone name. Every date-bucketed
	// computation resolves the venue timezone through this single path.
	GetTimezone(ctx context.Context, id string, companyID string) (string, error)
}
