// Package timeutil contains the time normalization rules shared by the
// booking engine and the availability calendar.  All bookings are stored at
// minute precision and the availability view is discretized into 30-minute
// buckets, so every inbound timestamp passes through these helpers before
// any comparison or persistence.
package timeutil

import "time"

// SlotWidth is the fixed width of one availability bucket.
const SlotWidth = 30 * time.Minute

// TruncateToMinute drops seconds and sub-second components.
func TruncateToMinute(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}

// RoundDownToHalfHour snaps t to the start of its enclosing 30-minute
// bucket: the minute becomes 0 when below 30 and 30 otherwise, with
// seconds and nanoseconds zeroed.
func RoundDownToHalfHour(t time.Time) time.Time {
	minute := 0
	if t.Minute() >= 30 {
		minute = 30
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, t.Location())
}

// RoundUpToHalfHour snaps t forward to the next 30-minute boundary.  A
// timestamp that already sits exactly on a boundary is returned unchanged.
func RoundUpToHalfHour(t time.Time) time.Time {
	if t.Minute()%30 == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t
	}
	return RoundDownToHalfHour(t.Add(SlotWidth))
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
