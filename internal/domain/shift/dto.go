package shift

import "time"

type ShiftResponse struct {
	ID         string `json:"id"`
	EventID    string `json:"event_id"`
	Name       string `json:"name"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	StaffCount *int   `json:"staff_count,omitempty"`
}

func NewShiftResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:         s.ID,
		EventID:    s.EventID,
		Name:       s.Name,
		StartDate:  s.StartDate.UTC().Format(time.RFC3339),
		EndDate:    s.EndDate.UTC().Format(time.RFC3339),
		StaffCount: s.StaffCount,
	}
}
