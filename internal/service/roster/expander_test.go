package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewsync/crewsync-backend-go/internal/domain/event"
	"github.com/crewsync/crewsync-backend-go/internal/domain/roster"
	"github.com/crewsync/crewsync-backend-go/internal/domain/shift"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/tz"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestExpand_TemplateOnly(t *testing.T) {
	g := roster.ShiftGroup{
		StartDate: ts("2024-02-23T09:00:00Z"),
		EndDate:   ts("2024-02-23T17:00:00Z"),
	}

	windows, err := Expand(g, time.UTC)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, g.StartDate, windows[0].Start)
	assert.Equal(t, g.EndDate, windows[0].End)
}

func TestExpand_RecurrenceKeepsTimeOfDay(t *testing.T) {
	g := roster.ShiftGroup{
		StartDate: ts("2024-02-23T09:00:00Z"),
		EndDate:   ts("2024-02-23T17:00:00Z"),
		Recursive: []string{"2024-02-24", "2024-02-26"},
	}

	windows, err := Expand(g, time.UTC)
	require.NoError(t, err)
	require.Len(t, windows, 3)

	assert.Equal(t, ts("2024-02-24T09:00:00Z"), windows[1].Start)
	assert.Equal(t, ts("2024-02-24T17:00:00Z"), windows[1].End)
	assert.Equal(t, ts("2024-02-26T09:00:00Z"), windows[2].Start)
	assert.Equal(t, ts("2024-02-26T17:00:00Z"), windows[2].End)
}

// A 19:00-05:00 template crosses midnight; its recurrence on 2024-02-24 must
// end on 2024-02-25, not the same day.
func TestExpand_OvernightRollover(t *testing.T) {
	g := roster.ShiftGroup{
		StartDate: ts("2024-02-23T19:00:00Z"),
		EndDate:   ts("2024-02-24T05:00:00Z"),
		Recursive: []string{"2024-02-24"},
	}

	windows, err := Expand(g, time.UTC)
	require.NoError(t, err)
	require.Len(t, windows, 2)

	assert.Equal(t, ts("2024-02-24T19:00:00Z"), windows[1].Start)
	assert.Equal(t, ts("2024-02-25T05:00:00Z"), windows[1].End)
}

// A template longer than 24h ends on a later calendar day even though its
// end clock time (21:00) is past its start clock time (20:00); recurrences
// must preserve that day offset.
func TestExpand_LongShiftSpanningMidnightRolls(t *testing.T) {
	g := roster.ShiftGroup{
		StartDate: ts("2024-02-22T20:00:00Z"),
		EndDate:   ts("2024-02-23T21:00:00Z"),
		Recursive: []string{"2024-03-01"},
	}

	windows, err := Expand(g, time.UTC)
	require.NoError(t, err)
	require.Len(t, windows, 2)

	assert.Equal(t, ts("2024-03-01T20:00:00Z"), windows[1].Start)
	assert.Equal(t, ts("2024-03-02T21:00:00Z"), windows[1].End)
}

// Time-of-day is venue-local: a 19:00 New York start stays 19:00 New York on
// every recurrence even though the UTC hour shifts with DST.
func TestExpand_RecurrenceAcrossDSTKeepsLocalClock(t *testing.T) {
	loc := tz.Resolve("America/New_York")

	// 2024-03-08 19:00 EST = 2024-03-09 00:00 UTC. DST starts 2024-03-10.
	g := roster.ShiftGroup{
		StartDate: ts("2024-03-09T00:00:00Z"),
		EndDate:   ts("2024-03-09T04:00:00Z"),
		Recursive: []string{"2024-03-11"},
	}

	windows, err := Expand(g, loc)
	require.NoError(t, err)
	require.Len(t, windows, 2)

	local := windows[1].Start.In(loc)
	assert.Equal(t, 19, local.Hour())
	assert.Equal(t, "2024-03-11", tz.DateKey(windows[1].Start, loc))
}

func TestExpand_InvalidWindow(t *testing.T) {
	g := roster.ShiftGroup{
		StartDate: ts("2024-02-23T17:00:00Z"),
		EndDate:   ts("2024-02-23T17:00:00Z"),
	}

	_, err := Expand(g, time.UTC)
	assert.ErrorIs(t, err, shift.ErrInvalidWindow)
}

func TestExpand_BadRecurrenceDate(t *testing.T) {
	g := roster.ShiftGroup{
		StartDate: ts("2024-02-23T09:00:00Z"),
		EndDate:   ts("2024-02-23T17:00:00Z"),
		Recursive: []string{"02/24/2024"},
	}

	_, err := Expand(g, time.UTC)
	assert.Error(t, err)
}

func TestAutoName(t *testing.T) {
	assert.Equal(t, "2/23 Friday 7:00 PM", AutoName(ts("2024-02-23T19:00:00Z"), time.UTC))
	assert.Equal(t, "6/1 Saturday 9:05 AM", AutoName(ts("2024-06-01T09:05:00Z"), time.UTC))
}

func TestValidateRange(t *testing.T) {
	ev := event.Event{
		StartDate: ts("2024-02-23T00:00:00Z"),
		EndDate:   ts("2024-02-25T00:00:00Z"),
		Timezone:  "UTC",
	}

	inside := []shift.Window{{Start: ts("2024-02-24T09:00:00Z"), End: ts("2024-02-24T17:00:00Z")}}
	assert.NoError(t, ValidateRange(inside, ev, time.UTC))

	outside := []shift.Window{{Start: ts("2024-02-26T09:00:00Z"), End: ts("2024-02-26T17:00:00Z")}}
	assert.ErrorIs(t, ValidateRange(outside, ev, time.UTC), shift.ErrOutsideEventRange)

	before := []shift.Window{{Start: ts("2024-02-22T09:00:00Z"), End: ts("2024-02-22T17:00:00Z")}}
	assert.ErrorIs(t, ValidateRange(before, ev, time.UTC), shift.ErrOutsideEventRange)
}
