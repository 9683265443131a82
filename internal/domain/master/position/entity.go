package position

import "time"

// Position is a job role staff are hired into. CompanyID is nil for global
// positions visible to every company.
type Position struct {
	ID        string
	CompanyID *string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGlobal reports whether the position is shared across companies.
func (p Position) IsGlobal() bool {
	return p.CompanyID == nil
}
