package stats

import (
	"math"
	"time"
)

// staleAfter is how long an open check-in keeps accruing against the clock.
// Past this, the session is considered abandoned and accrual is clamped to
// the scheduled shift end.
const staleAfter = 24 * time.Hour

// Accrue computes a staff member's expected and accrued cost at instant now.
//
// Expected cost always prices the full scheduled window, independent of
// attendance. Accrued cost is piecewise: zero before check-in; actual worked
// hours once checked out; elapsed hours for an open session under 24h; and
// clamped to the scheduled shift end for an open session 24h or older.
//
// Durations stay fractional here. Rounding happens only at presentation
// boundaries, never before summation, so error cannot compound across rows.
func Accrue(rate float64, shiftStart, shiftEnd time.Time, checkedInAt, checkedOutAt *time.Time, now time.Time) (totalExpected, currentAccrued float64) {
	totalExpected = hoursBetween(shiftStart, shiftEnd) * rate

	switch {
	case checkedInAt == nil:
		currentAccrued = 0
	case checkedOutAt != nil:
		currentAccrued = hoursBetween(*checkedInAt, *checkedOutAt) * rate
	case now.Sub(*checkedInAt) < staleAfter:
		currentAccrued = hoursBetween(*checkedInAt, now) * rate
	default:
		currentAccrued = hoursBetween(*checkedInAt, shiftEnd) * rate
	}

	return totalExpected, currentAccrued
}

func hoursBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours()
}

// Round2 rounds to two decimal places. Report and response builders call
// this after summation; nothing inside the aggregation path does.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
