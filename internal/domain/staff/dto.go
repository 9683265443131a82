package staff

import (
	"time"

	"github.com/crewsync/crewsync-backend-go/internal/pkg/validator"
)

// ========================================
// STAFF DTOs
// ========================================

type CreateStaffRequest struct {
	EventID    string  `json:"event_id"`
	ShiftID    string  `json:"shift_id"`
	VendorID   string  `json:"vendor_id"`
	PositionID string  `json:"position_id"`
	HourlyRate float64 `json:"hourly_rate"`
	IsPriority bool    `json:"is_priority"`
}

func (r *CreateStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	for field, value := range map[string]string{
		"event_id":    r.EventID,
		"shift_id":    r.ShiftID,
		"vendor_id":   r.VendorID,
		"position_id": r.PositionID,
	} {
		if validator.IsEmpty(value) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " is required",
			})
		}
	}

	if !validator.IsNonNegativeRate(r.HourlyRate) {
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

type CheckInRequest struct {
	StaffID string `json:"staff_id"`
	EventID string `json:"event_id"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}

	if validator.IsEmpty(r.EventID) {
		errs = append(errs, validator.ValidationError{
			Field:   "event_id",
			Message: "event_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	StaffID string `json:"staff_id"`
	EventID string `json:"event_id"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}

	if validator.IsEmpty(r.EventID) {
		errs = append(errs, validator.ValidationError{
			Field:   "event_id",
			Message: "event_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ClaimQRRequest binds a scanned QR token to a staff record. Uniqueness of
// the code within the shift is verified inside the claiming transaction.
type ClaimQRRequest struct {
	StaffID string `json:"staff_id"`
	EventID string `json:"event_id"`
	Token   string `json:"token"`
}

func (r *ClaimQRRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}

	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "token is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ToggleFlagRequest struct {
	StaffID string `json:"staff_id"`
	EventID string `json:"event_id"`
	Flagged bool   `json:"flagged"`
}

type TogglePriorityRequest struct {
	StaffID  string `json:"staff_id"`
	EventID  string `json:"event_id"`
	Priority bool   `json:"priority"`
}

// BatchUpdateRequest reassigns a set of staff rows in one statement.
// Nil fields are left untouched.
type BatchUpdateRequest struct {
	EventID    string   `json:"event_id"`
	StaffIDs   []string `json:"staff_ids"`
	HourlyRate *float64 `json:"hourly_rate"`
	VendorID   *string  `json:"vendor_id"`
	PositionID *string  `json:"position_id"`
}

func (r *BatchUpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.StaffIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_ids",
			Message: "staff_ids is required",
		})
	}

	if r.HourlyRate == nil && r.VendorID == nil && r.PositionID == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "update",
			Message: "at least one of hourly_rate, vendor_id, position_id is required",
		})
	}

	if r.HourlyRate != nil && !validator.IsNonNegativeRate(*r.HourlyRate) {
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

// ListFilter narrows staff listings. Zero values mean "no filter".
type ListFilter struct {
	EventID    string
	VendorID   string
	ShiftID    string
	PositionID string
	// DateKey is a venue-local calendar day. The service resolves it into the
	// From/To UTC bounds before the filter reaches the repository.
	DateKey     string
	From        *time.Time
	To          *time.Time
	FlaggedOnly bool
	CheckedIn   *bool // nil = any, true = currently on shift, false = not
	Deleted     bool  // include soft-deleted rows (variance reads)
	Page        int
	Limit       int
}

type StaffResponse struct {
	ID            string   `json:"id"`
	EventID       string   `json:"event_id"`
	ShiftID       string   `json:"shift_id"`
	ShiftName     *string  `json:"shift_name,omitempty"`
	VendorID      string   `json:"vendor_id"`
	VendorName    *string  `json:"vendor_name,omitempty"`
	PositionID    string   `json:"position_id"`
	PositionName  *string  `json:"position_name,omitempty"`
	HourlyRate    float64  `json:"hourly_rate"`
	CheckedInAt   *string  `json:"checked_in_at"`
	CheckedOutAt  *string  `json:"checked_out_at"`
	QRCode        *string  `json:"qr_code,omitempty"`
	IsFlagged     bool     `json:"is_flagged"`
	IsPriority    bool     `json:"is_priority"`
	AddedManually bool     `json:"added_manually"`
	DeletedAt     *string  `json:"deleted_at,omitempty"`
}

// NewStaffResponse converts an entity into the transport shape, formatting
// timestamps as RFC3339 UTC.
func NewStaffResponse(s Staff) StaffResponse {
	format := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		v := t.UTC().Format(time.RFC3339)
		return &v
	}

	return StaffResponse{
		ID:            s.ID,
		EventID:       s.EventID,
		ShiftID:       s.ShiftID,
		ShiftName:     s.ShiftName,
		VendorID:      s.VendorID,
		VendorName:    s.VendorName,
		PositionID:    s.PositionID,
		PositionName:  s.PositionName,
		HourlyRate:    s.HourlyRate,
		CheckedInAt:   format(s.CheckedInAt),
		CheckedOutAt:  format(s.CheckedOutAt),
		QRCode:        s.QRCode,
		IsFlagged:     s.IsFlagged,
		IsPriority:    s.IsPriority,
		AddedManually: s.AddedManually,
		DeletedAt:     format(s.DeletedAt),
	}
}

type ListStaffResponse struct {
	Staff      []StaffResponse `json:"staff"`
	TotalItems int64           `json:"total_items"`
}
