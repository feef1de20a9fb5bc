package service

import (
	"time"

	"github.com/seatly/desk-reservation/internal/timeutil"
)

// ValidationError reports malformed or out-of-range input: an inverted
// interval, a span crossing midnight, or a recurrence count outside 0..3.
// It is always caller-fixable and maps to an HTTP 400 response.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// ConflictError reports a semantically valid request that collides with an
// existing booking.  ConflictAt is the start of the first expanded slot
// that collided, so callers can tell users exactly which occurrence of a
// recurring request failed.  Maps to an HTTP 409 response.
type ConflictError struct {
	ConflictAt time.Time
}

func (e *ConflictError) Error() string {
	return "desk is already booked at " + e.ConflictAt.Format(timeutil.Layout)
}
