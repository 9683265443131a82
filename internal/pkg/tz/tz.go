// Package tz derives venue-local calendar-day keys from UTC instants.
//
// Every component that groups by date must go through this package with the
// event's resolved location. Two call sites converting the same instant with
// different rules is the bug class this package exists to prevent.
package tz

import (
	"fmt"
	"time"
)

// DateKeyLayout is the canonical calendar-day key layout.
const DateKeyLayout = "2006-01-02"

// Resolve loads an IANA timezone name, falling back to UTC for names that do
// not resolve. Callers that must distinguish a bad name use time.LoadLocation
// directly.
func Resolve(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DateKey converts a UTC instant into the venue-local "YYYY-MM-DD" key.
func DateKey(instant time.Time, loc *time.Location) string {
	return instant.In(loc).Format(DateKeyLayout)
}

// ParseKey parses a "YYYY-MM-DD" key as a venue-local midnight.
func ParseKey(key string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return day, nil
}

// DayBounds returns the UTC half-open interval [start, end) covering the
// venue-local calendar day named by key. Used for range-filtering queries so
// that SQL never has to do timezone arithmetic itself.
func DayBounds(key string, loc *time.Location) (time.Time, time.Time, error) {
	day, err := ParseKey(key, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := day.UTC()
	end := day.AddDate(0, 0, 1).UTC()
	return start, end, nil
}
