// Package dateutil provides pure calendar-day arithmetic over YYYY-MM-DD
// day strings. Time-of-day is always ignored; "today" is evaluated in
// local time.
package dateutil

import (
	"time"

	"github.com/keiki-saito/habit100-app/internal/constants"
)

// Format converts a time to its canonical YYYY-MM-DD day string.
func Format(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Parse converts a YYYY-MM-DD day string to a time at local midnight.
func Parse(day string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, day, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Valid reports whether day is a well-formed YYYY-MM-DD string.
func Valid(day string) bool {
	_, err := Parse(day)
	return err == nil
}

// Today returns the current local calendar day.
func Today() string {
	return Format(time.Now())
}

// SameDay reports whether a and b fall on the same calendar day in local
// time.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsToday reports whether day is the current local calendar day.
func IsToday(day string) bool {
	return day == Today()
}

// AddDays shifts a day string by n calendar days. n may be negative.
// Month and year boundaries roll over; the result is congruent with
// Format's string form. Malformed input is returned unchanged.
func AddDays(day string, n int) string {
	t, err := Parse(day)
	if err != nil {
		return day
	}
	return Format(t.AddDate(0, 0, n))
}

// DaysSince counts calendar days from start (inclusive) to today
// (inclusive): 1 when start is today. Zero or negative results only occur
// for future starts, which callers must guard against.
func DaysSince(start string) int {
	return DaysBetween(start, Today())
}

// DaysBetween counts calendar days from start to end, both inclusive:
// 1 when start equals end. Malformed input yields 0.
func DaysBetween(start, end string) int {
	s, err := Parse(start)
	if err != nil {
		return 0
	}
	e, err := Parse(end)
	if err != nil {
		return 0
	}
	// Both are local midnights, so the division is exact except across
	// DST transitions; rounding absorbs the offset.
	days := int(e.Sub(s).Round(24*time.Hour) / (24 * time.Hour))
	return days + 1
}
