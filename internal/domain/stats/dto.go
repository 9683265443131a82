package stats

import (
	"time"

	"github.com/crewsync/crewsync-backend-go/internal/pkg/validator"
)

// Query scopes the three aggregate sources to one event, optionally narrowed
// to a vendor/shift/position and a UTC time window (computed from a
// venue-local date key via tz.DayBounds). Now anchors the accrual formula so
// all three sources price open sessions against the same instant.
type Query struct {
	EventID    string
	VendorID   string
	ShiftID    string
	PositionID string
	From       *time.Time
	To         *time.Time
	Now        time.Time
}

type OverviewRequest struct {
	EventID  string   `json:"event_id"`
	Dates    []string `json:"dates"`
	VendorID string   `json:"vendor_id"`
	ShiftID  string   `json:"shift_id"`
}

func (r *OverviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EventID) {
		errs = append(errs, validator.ValidationError{
			Field:   "event_id",
			Message: "event_id is required",
		})
	}

	for _, d := range r.Dates {
		if _, ok := validator.IsValidDate(d); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "dates",
				Message: "dates must be YYYY-MM-DD",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// OverviewResponse is the full merged tree for an event, plus the totals
// rolled up across every vendor.
type OverviewResponse struct {
	EventID string         `json:"event_id"`
	Dates   []string       `json:"dates,omitempty"`
	Vendors []VendorReport `json:"vendors"`
	Totals  VendorSummary  `json:"totals"`
}

// DailyBucket is one venue-local calendar day's merged tree.
type DailyBucket struct {
	DateKey string         `json:"date"`
	Vendors []VendorReport `json:"vendors"`
	Totals  VendorSummary  `json:"totals"`
}

type DailyBreakdownResponse struct {
	EventID string        `json:"event_id"`
	Days    []DailyBucket `json:"days"`
}
