package shift

import "time"

type Shift struct {
	ID        string
	EventID   string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	StaffCount *int
}

// Window is the (start, end) pair shifts are deduplicated on within an event.
type Window struct {
	Start time.Time
	End   time.Time
}

// SameWindow reports whether the shift occupies exactly this time window.
func (s Shift) SameWindow(w Window) bool {
	return s.StartDate.Equal(w.Start) && s.EndDate.Equal(w.End)
}
