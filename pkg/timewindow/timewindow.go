// Package timewindow computes the UTC-bounded local-day and local-week
// intervals that bound the booking limit queries, and renders instants in a
// client's timezone.
package timewindow

import (
	"time"
)

// DisplayLayout is the wall-clock format shown to clients.
const DisplayLayout = "2006-01-02 03:04 PM"

// ResolveLocation looks up an IANA timezone name. Empty or unrecognized
// names fall back to UTC, never an error.
func ResolveLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DailyBounds returns the half-open UTC interval [start of the current local
// day, start of the next local day) for the given timezone. Midnight is found
// by wall-clock truncation, so the window stays correct across DST changes.
func DailyBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	startLocal := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	endLocal := startLocal.AddDate(0, 0, 1)
	return startLocal.UTC(), endLocal.UTC()
}

// WeeklyBounds returns the half-open UTC interval covering the current local
// calendar week. Weeks start on Monday.
func WeeklyBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	startLocal := dayStart.AddDate(0, 0, -weekdayIndex(local))
	endLocal := startLocal.AddDate(0, 0, 7)
	return startLocal.UTC(), endLocal.UTC()
}

// FormatLocal renders an instant as local wall-clock time in loc.
func FormatLocal(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DisplayLayout)
}

// weekdayIndex maps time.Weekday (Sunday=0) to an ISO index (Monday=0).
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
