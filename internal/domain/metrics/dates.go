package metrics

import "time"

// DateOnly drops the clock part of t, keeping its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartOfMonth returns the first calendar day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// WindowStart is the first day of a trailing window of the given length.
func WindowStart(today time.Time, days int) time.Time {
	return DateOnly(today).AddDate(0, 0, -days)
}

// InWindow reports whether d falls on a calendar day inside [start, end].
func InWindow(d, start, end time.Time) bool {
	if d.IsZero() {
		return false
	}
	day := DateOnly(d)
	return !day.Before(DateOnly(start)) && !day.After(DateOnly(end))
}
