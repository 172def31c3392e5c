// Package clock produces the comparable timestamps and UTC date keys the
// sync core orders and windows records by.
package clock

import "time"

// Now returns the current time in UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// Stamp returns the current time as an RFC-3339 string, the format stored in
// every record's updated_at / deleted_at fields.
func Stamp() string {
	return Format(Now())
}

// Format renders t as an RFC-3339 UTC string.
func Format(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Parse converts a stored timestamp back to time.Time. Empty or malformed
// input yields the zero time: a record without a usable stamp sorts as
// "oldest" rather than failing the merge.
func Parse(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// DateKey returns the UTC calendar date of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// WindowStart returns midnight UTC of the first day of an inclusive pull
// window ending at anchor's day. The lookback is clamped to at least one
// day, so the window always spans two calendar days or more.
func WindowStart(anchor time.Time, daysBack int) time.Time {
	if daysBack < 1 {
		daysBack = 1
	}
	y, m, d := anchor.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -daysBack)
}
