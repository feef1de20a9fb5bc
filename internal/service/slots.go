package service

import (
	"time"

	"github.com/seatly/desk-reservation/internal/timeutil"
)

// maxAdditionalWeeks caps a weekly recurrence at 4 total weeks: the
// original slot plus up to 3 repeats.
const maxAdditionalWeeks = 3

// Recurrence asks for a booking to repeat weekly.  Occurrences counts the
// additional weeks beyond the original slot, so Occurrences=0 books a
// single week and Occurrences=3 books four.  A nil *Recurrence means no
// repetition.
type Recurrence struct {
	Occurrences int
}

// slot is one concrete candidate interval produced by expansion.
type slot struct {
	start time.Time
	end   time.Time
}

// expandSlots turns a normalized (start, end) pair and an optional weekly
// recurrence into the ordered list of candidate slots, one per week offset
// starting at the original week.  Output order matches offset order; the
// engine and its callers rely on that for conflict reporting and response
// mapping.
func expandSlots(start, end time.Time, rec *Recurrence) ([]slot, error) {
	if !start.Before(end) {
		return nil, validationError("startAt must be before endAt")
	}
	if !timeutil.SameDay(start, end) {
		return nil, validationError("startAt and endAt must be on the same day")
	}
	additionalWeeks := 0
	if rec != nil {
		additionalWeeks = rec.Occurrences
	}
	if additionalWeeks < 0 || additionalWeeks > maxAdditionalWeeks {
		return nil, validationError("recurrence can extend up to 4 total weeks")
	}
	slots := make([]slot, 0, additionalWeeks+1)
	for offset := 0; offset <= additionalWeeks; offset++ {
		slots = append(slots, slot{
			start: start.AddDate(0, 0, 7*offset),
			end:   end.AddDate(0, 0, 7*offset),
		})
	}
	return slots, nil
}
