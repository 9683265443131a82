package tz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_FallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Resolve("Not/AZone"))
	assert.Equal(t, "America/New_York", Resolve("America/New_York").String())
}

// The same UTC instant lands on different calendar days depending on the
// venue. This is the whole reason bucketing goes through the event timezone.
func TestDateKey_VenueLocalDay(t *testing.T) {
	instant := time.Date(2024, 6, 2, 2, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-06-02", DateKey(instant, time.UTC))
	assert.Equal(t, "2024-06-01", DateKey(instant, Resolve("America/New_York"))) // 22:30 the night before
	assert.Equal(t, "2024-06-02", DateKey(instant, Resolve("Asia/Jakarta")))
}

func TestParseKey_Invalid(t *testing.T) {
	_, err := ParseKey("06/01/2024", time.UTC)
	assert.Error(t, err)
}

func TestDayBounds_CoversLocalDay(t *testing.T) {
	loc := Resolve("America/New_York")

	start, end, err := DayBounds("2024-06-01", loc)
	require.NoError(t, err)

	// EDT is UTC-4: local midnight is 04:00 UTC.
	assert.Equal(t, time.Date(2024, 6, 1, 4, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 6, 2, 4, 0, 0, 0, time.UTC), end)
}

// The spring-forward day is 23 hours long; bounds must follow the local
// calendar, not add a fixed 24h.
func TestDayBounds_DSTTransition(t *testing.T) {
	loc := Resolve("America/New_York")

	start, end, err := DayBounds("2024-03-10", loc)
	require.NoError(t, err)

	assert.Equal(t, 23*time.Hour, end.Sub(start))
}

func TestDayBounds_RoundTripsWithDateKey(t *testing.T) {
	loc := Resolve("Asia/Jakarta")

	start, end, err := DayBounds("2024-06-01", loc)
	require.NoError(t, err)

	assert.Equal(t, "2024-06-01", DateKey(start, loc))
	assert.Equal(t, "2024-06-01", DateKey(end.Add(-time.Second), loc))
	assert.Equal(t, "2024-06-02", DateKey(end, loc))
}
