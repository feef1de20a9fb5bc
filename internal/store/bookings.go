// Package store defines the persistence contracts consumed by the booking
// engine.  The interfaces, not the SQL behind them, are the overlap and
// atomicity contract: any implementation must use the half-open predicate
// `start_at < queryEnd AND end_at > queryStart` for both methods so that
// conflict rejection and availability classification can never disagree.
package store

import (
	"context"
	"time"

	"github.com/seatly/desk-reservation/internal/model"
)

// BookingStore is the read/write surface the booking engine needs.
type BookingStore interface {
	// FindOverlapping returns all bookings for the desk that overlap the
	// half-open interval [start, end), ordered by start time.
	FindOverlapping(ctx context.Context, deskID uint64, start, end time.Time) ([]model.Booking, error)

	// InTx runs fn inside a single transaction.  The transaction commits
	// only when fn returns nil; any error rolls back every write made
	// through the BookingTx.
	InTx(ctx context.Context, fn func(tx BookingTx) error) error
}

// BookingLister is the read surface for a user's own bookings.
type BookingLister interface {
	// ListByUser returns the user's bookings, newest first.
	ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error)
}

// BookingTx is the transactional slice of the store used during booking
// creation.  Conflict checks and inserts for one request all go through
// the same transaction so no concurrent attempt can interleave between
// check and write.
type BookingTx interface {
	// ExistsOverlapping reports whether any booking for the desk overlaps
	// the half-open interval [start, end).
	ExistsOverlapping(ctx context.Context, deskID uint64, start, end time.Time) (bool, error)

	// Insert persists a booking and populates its storage-assigned ID.
	// A uniqueness violation on (desk_id, start_at) is reported as
	// ErrDuplicateSlot.
	Insert(ctx context.Context, b *model.Booking) error
}
