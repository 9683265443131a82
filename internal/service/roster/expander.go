package roster

import (
	"fmt"
	"time"

	"github.com/crewsync/crewsync-backend-go/internal/domain/event"
	"github.com/crewsync/crewsync-backend-go/internal/domain/roster"
	"github.com/crewsync/crewsync-backend-go/internal/domain/shift"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/tz"
)

// autoNameLayout renders the venue-local start instant as e.g.
// "2/23 Friday 7:00 PM". Shifts are never named by users; the name is
// derived so two uploads of the same window always agree on it.
const autoNameLayout = "1/2 Monday 3:04 PM"

// Expand resolves one shift group into its full window set: the template
// window first, then one window per recurrence date in input order.
//
// Recurrence dates are venue-local calendar days that reuse the template's
// venue-local time-of-day window. The end lands as many calendar days after
// the recurrence date as the template's end date sits after its start date:
// a 19:00-05:00 template recurring on 2024-02-24 ends 2024-02-25T05:00
// local, and a 25h 20:00-to-next-day-21:00 template rolls a day too.
func Expand(g roster.ShiftGroup, loc *time.Location) ([]shift.Window, error) {
	if !g.EndDate.After(g.StartDate) {
		return nil, shift.ErrInvalidWindow
	}

	windows := make([]shift.Window, 0, 1+len(g.Recursive))
	windows = append(windows, shift.Window{Start: g.StartDate.UTC(), End: g.EndDate.UTC()})

	localStart := g.StartDate.In(loc)
	localEnd := g.EndDate.In(loc)
	rollDays := calendarDays(localStart, localEnd)

	for _, key := range g.Recursive {
		day, err := tz.ParseKey(key, loc)
		if err != nil {
			return nil, err
		}

		start := atClock(day, localStart, loc)
		end := atClock(day.AddDate(0, 0, rollDays), localEnd, loc)

		windows = append(windows, shift.Window{Start: start.UTC(), End: end.UTC()})
	}

	return windows, nil
}

// AutoName derives the shift's display name from its venue-local start.
func AutoName(start time.Time, loc *time.Location) string {
	return start.In(loc).Format(autoNameLayout)
}

// ValidateRange rejects windows whose venue-local start day falls outside the
// event's operational days. The comparison is done on venue-local date keys:
// a shift starting 23:00 the night before the event opens is outside even if
// its UTC instant is already inside.
func ValidateRange(windows []shift.Window, ev event.Event, loc *time.Location) error {
	first := tz.DateKey(ev.StartDate, loc)
	last := tz.DateKey(ev.EndDate, loc)

	for _, w := range windows {
		key := tz.DateKey(w.Start, loc)
		if key < first || key > last {
			return shift.ErrOutsideEventRange
		}
	}
	return nil
}

func atClock(day time.Time, clock time.Time, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, loc)
}

// calendarDays counts whole calendar days between a's and b's local dates.
// Both are re-anchored at UTC midnight so a DST-shortened day still counts
// as one day.
func calendarDays(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au) / (24 * time.Hour))
}

// windowKey is the dedup key for a window inside one upload and against
// persisted shifts.
func windowKey(w shift.Window) string {
	return fmt.Sprintf("%d|%d", w.Start.Unix(), w.End.Unix())
}
