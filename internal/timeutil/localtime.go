package timeutil

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layout is the wire format for timestamps: a timezone-naive local
// date-time.  The core never applies timezone conversion; the database
// session runs with loc=UTC so naive values round-trip unchanged.
const Layout = "2006-01-02T15:04:05"

// layoutMinute accepts the minute-precision form clients commonly send.
const layoutMinute = "2006-01-02T15:04"

// ParseLocal parses a timezone-naive date-time string, accepting both the
// second- and minute-precision forms.
func ParseLocal(s string) (time.Time, error) {
	if t, err := time.Parse(Layout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(layoutMinute, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date-time %q", s)
	}
	return t, nil
}

// LocalTime wraps time.Time with the naive wire format for JSON bodies.
type LocalTime struct {
	time.Time
}

func (lt LocalTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(lt.Format(Layout))
}

func (lt *LocalTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := ParseLocal(s)
	if err != nil {
		return err
	}
	lt.Time = t
	return nil
}
