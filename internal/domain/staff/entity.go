package staff

import "time"

type Staff struct {
	ID            string
	EventID       string
	ShiftID       string
	VendorID      string
	PositionID    string
	HourlyRate    float64
	CheckedInAt   *time.Time
	CheckedOutAt  *time.Time
	QRCode        *string
	IsFlagged     bool
	IsPriority    bool
	AddedManually bool
	DeletedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO
	VendorName   *string
	PositionName *string
	ShiftName    *string
}

// IsCheckedIn reports whether the staff member is currently on shift
// (checked in with no check-out recorded).
func (s Staff) IsCheckedIn() bool {
	return s.CheckedInAt != nil && s.CheckedOutAt == nil
}

// IsClosed reports whether the attendance state is "closed": never touched,
// or fully completed. Only closed records are eligible for bulk removal.
func (s Staff) IsClosed() bool {
	if s.CheckedInAt == nil && s.CheckedOutAt == nil {
		return true
	}
	return s.CheckedInAt != nil && s.CheckedOutAt != nil
}
