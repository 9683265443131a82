package roster

import (
	"time"

	"github.com/crewsync/crewsync-backend-go/internal/domain/shift"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/validator"
)

// ========================================
// BULK UPLOAD DTOs
// ========================================

// StaffRow is one pre-parsed roster line's staff payload. CSV parsing itself
// happens upstream; the service receives structured groups.
type StaffRow struct {
	VendorName   string  `json:"vendor_name"`
	PositionName string  `json:"position_name"`
	HourlyRate   float64 `json:"hourly_rate"`
	Quantity     int     `json:"quantity"`
	IsPriority   bool    `json:"is_priority"`
}

// ShiftGroup is one original CSV line: a shift template, optional recurrence
// dates sharing the template's time-of-day window, and the staff to attach to
// every resolved instance.
type ShiftGroup struct {
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	Recursive []string   `json:"recursive"` // additional YYYY-MM-DD venue-local dates
	Staff     []StaffRow `json:"staff"`
}

type UploadRequest struct {
	EventID string       `json:"event_id"`
	Groups  []ShiftGroup `json:"groups"`
}

func (r *UploadRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EventID) {
		errs = append(errs, validator.ValidationError{
			Field:   "event_id",
			Message: "event_id is required",
		})
	}

	if len(r.Groups) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "groups",
			Message: "at least one shift group is required",
		})
	}

	for _, g := range r.Groups {
		if !g.EndDate.After(g.StartDate) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "shift end must be after shift start",
			})
			break
		}
	}

	for _, g := range r.Groups {
		for _, d := range g.Recursive {
			if _, ok := validator.IsValidDate(d); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   "recursive",
					Message: "recurrence dates must be YYYY-MM-DD",
				})
				break
			}
		}
	}

	for _, g := range r.Groups {
		for _, s := range g.Staff {
			if s.Quantity < 0 {
				errs = append(errs, validator.ValidationError{
					Field:   "quantity",
					Message: "staff quantity must not be negative",
				})
			}
			if !validator.IsNonNegativeRate(s.HourlyRate) {
				errs = append(errs, validator.ValidationError{
					Field:   "hourly_rate",
					Message: "hourly_rate must not be negative",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UploadResult reports what one upload resolved to, grouped per original
// line so callers can re-associate staff rows to shift instances.
type UploadResult struct {
	Groups       []ResolvedGroup `json:"groups"`
	StaffCreated int             `json:"staff_created"`
}

type ResolvedGroup struct {
	// Shifts holds the full resolved set (existing + newly created) in the
	// same order as the input: template first, then recurrences.
	Shifts  []shift.Shift `json:"shifts"`
	Created int           `json:"created"`
}

// ========================================
// QUANTITY-BASED BULK ADD / REMOVE
// ========================================

// AddOrRemoveRequest adjusts head count for a vendor/shift/position triple.
// Positive quantity adds manually-tracked staff; negative removes closed
// records, failing whole if not enough are eligible.
type AddOrRemoveRequest struct {
	EventID    string  `json:"event_id"`
	VendorID   string  `json:"vendor_id"`
	ShiftID    string  `json:"shift_id"`
	PositionID string  `json:"position_id"`
	Quantity   int     `json:"quantity"`
	HourlyRate float64 `json:"hourly_rate"`
}

func (r *AddOrRemoveRequest) Validate() error {
	var errs validator.ValidationErrors

	for field, value := range map[string]string{
		"event_id":    r.EventID,
		"vendor_id":   r.VendorID,
		"shift_id":    r.ShiftID,
		"position_id": r.PositionID,
	} {
		if validator.IsEmpty(value) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " is required",
			})
		}
	}

	if r.Quantity == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "quantity",
			Message: "quantity must be a non-zero integer",
		})
	}

	if r.Quantity > 0 && !validator.IsNonNegativeRate(r.HourlyRate) {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AddOrRemoveResult reports what a quantity adjustment actually did.
type AddOrRemoveResult struct {
	Added        int  `json:"added"`
	Removed      int  `json:"removed"`
	ShiftDeleted bool `json:"shift_deleted"`
}
