package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func tsp(s string) *time.Time {
	t := ts(s)
	return &t
}

func TestAccrue_NeverCheckedIn(t *testing.T) {
	expected, accrued := Accrue(20,
		ts("2024-06-01T09:00:00Z"), ts("2024-06-01T17:00:00Z"),
		nil, nil,
		ts("2024-06-01T12:00:00Z"),
	)

	// Expected cost always prices the full shift window.
	assert.InDelta(t, 160.0, expected, 0.001)
	assert.Equal(t, 0.0, accrued)
}

func TestAccrue_CompletedSession(t *testing.T) {
	expected, accrued := Accrue(20,
		ts("2024-06-01T09:00:00Z"), ts("2024-06-01T17:00:00Z"),
		tsp("2024-06-01T09:00:00Z"), tsp("2024-06-01T13:30:00Z"),
		ts("2024-06-02T00:00:00Z"),
	)

	assert.InDelta(t, 160.0, expected, 0.001)
	assert.InDelta(t, 90.0, accrued, 0.001) // 4.5h * 20
}

func TestAccrue_OpenSessionAccruesToNow(t *testing.T) {
	_, accrued := Accrue(15,
		ts("2024-06-01T09:00:00Z"), ts("2024-06-01T17:00:00Z"),
		tsp("2024-06-01T10:00:00Z"), nil,
		ts("2024-06-01T12:00:00Z"),
	)

	assert.InDelta(t, 30.0, accrued, 0.001) // 2h * 15
}

// An open session left running keeps accruing right up to the 24h mark, then
// snaps back to being priced against the scheduled shift end.
func TestAccrue_StaleOpenSessionCapsAtShiftEnd(t *testing.T) {
	shiftStart := ts("2024-06-01T09:00:00Z")
	shiftEnd := ts("2024-06-01T17:00:00Z")
	checkIn := tsp("2024-06-01T09:00:00Z")

	// One minute before the cutoff: still pricing against now.
	_, before := Accrue(10, shiftStart, shiftEnd, checkIn, nil,
		checkIn.Add(staleAfter-time.Minute))
	assert.InDelta(t, 10.0*(staleAfter-time.Minute).Hours(), before, 0.001)

	// At the cutoff: priced against shift end instead.
	_, after := Accrue(10, shiftStart, shiftEnd, checkIn, nil,
		checkIn.Add(staleAfter))
	assert.InDelta(t, 80.0, after, 0.001) // 8h * 10

	// The discontinuity is the point: the stale branch yields less than the
	// runaway open session would have.
	assert.Greater(t, before, after)
}

func TestAccrue_ZeroRate(t *testing.T) {
	expected, accrued := Accrue(0,
		ts("2024-06-01T09:00:00Z"), ts("2024-06-01T17:00:00Z"),
		tsp("2024-06-01T09:00:00Z"), nil,
		ts("2024-06-01T12:00:00Z"),
	)

	assert.Equal(t, 0.0, expected)
	assert.Equal(t, 0.0, accrued)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 12.35, Round2(12.345))
	assert.Equal(t, 12.34, Round2(12.344))
	assert.Equal(t, 0.0, Round2(0))
}
