package event

import (
	"time"
)

type Event struct {
	ID        string
	CompanyID string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
