// Package service contains the booking engine: request validation, time
// normalization, recurrence expansion, conflict detection and the derived
// availability calendar.  It owns no SQL; persistence goes through the
// contracts in the store package.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/seatly/desk-reservation/internal/model"
	"github.com/seatly/desk-reservation/internal/store"
	"github.com/seatly/desk-reservation/internal/timeutil"
)

// SlotStatus tags one availability bucket.
type SlotStatus string

const (
	StatusAvailable SlotStatus = "AVAILABLE"
	StatusBooked    SlotStatus = "BOOKED"
)

// AvailabilitySlot is one fixed-width bucket of the availability calendar.
// It is derived at query time and never persisted.
type AvailabilitySlot struct {
	StartAt time.Time
	EndAt   time.Time
	Status  SlotStatus
}

// BookingEngine orchestrates booking creation and availability queries
// over a BookingStore.  It is safe for concurrent use.
type BookingEngine struct {
	store store.BookingStore
}

// NewBookingEngine constructs a BookingEngine.  The store must be non-nil.
func NewBookingEngine(s store.BookingStore) *BookingEngine {
	if s == nil {
		panic("nil store passed to NewBookingEngine")
	}
	return &BookingEngine{store: s}
}

// CreateBooking validates and normalizes the requested interval, expands
// the optional weekly recurrence into candidate slots, checks every slot
// for conflicts in expansion order and persists all of them atomically.
// On the first conflicting slot the whole operation aborts with a
// *ConflictError carrying that slot's start; no partial reservations are
// ever created.  The returned bookings are in expansion order, slot 0
// being the original week.
func (e *BookingEngine) CreateBooking(ctx context.Context, deskID, userID uint64, startAt, endAt time.Time, rec *Recurrence) ([]model.Booking, error) {
	// Inverted intervals are rejected on the raw input, before
	// truncation can make the endpoints equal.
	if !startAt.Before(endAt) {
		return nil, validationError("startAt must be before endAt")
	}
	start := timeutil.TruncateToMinute(startAt)
	end := timeutil.TruncateToMinute(endAt)

	slots, err := expandSlots(start, end, rec)
	if err != nil {
		return nil, err
	}

	created := make([]model.Booking, 0, len(slots))
	err = e.store.InTx(ctx, func(tx store.BookingTx) error {
		for _, s := range slots {
			taken, err := tx.ExistsOverlapping(ctx, deskID, s.start, s.end)
			if err != nil {
				return err
			}
			if taken {
				return &ConflictError{ConflictAt: s.start}
			}
		}
		for _, s := range slots {
			b := model.Booking{
				DeskID:  deskID,
				UserID:  userID,
				StartAt: s.start,
				EndAt:   s.end,
			}
			if err := tx.Insert(ctx, &b); err != nil {
				// A concurrent request can win the race between the
				// check above and this write; the unique index on
				// (desk_id, start_at) catches it and the outcome is
				// still a conflict, not a storage error.
				if errors.Is(err, store.ErrDuplicateSlot) {
					return &ConflictError{ConflictAt: s.start}
				}
				return err
			}
			created = append(created, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListAvailability produces the discretized availability calendar for a
// desk: the query window is normalized to minute precision, widened to
// half-hour boundaries, fetched in one overlap query and walked in fixed
// 30-minute steps.  Each bucket is BOOKED when any fetched booking
// overlaps it under the same half-open predicate used for conflict
// rejection, else AVAILABLE.  The call is a pure read and is safe to
// repeat concurrently.
func (e *BookingEngine) ListAvailability(ctx context.Context, deskID uint64, startAt, endAt time.Time) ([]AvailabilitySlot, error) {
	// Equal endpoints are allowed and short-circuit to an empty grid.
	if endAt.Before(startAt) {
		return nil, validationError("endAt must not be before startAt")
	}
	windowStart := timeutil.RoundDownToHalfHour(timeutil.TruncateToMinute(startAt))
	windowEnd := timeutil.RoundUpToHalfHour(timeutil.TruncateToMinute(endAt))
	if !windowStart.Before(windowEnd) {
		return []AvailabilitySlot{}, nil
	}

	bookings, err := e.store.FindOverlapping(ctx, deskID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	slots := make([]AvailabilitySlot, 0, windowEnd.Sub(windowStart)/timeutil.SlotWidth)
	for slotStart := windowStart; slotStart.Before(windowEnd); slotStart = slotStart.Add(timeutil.SlotWidth) {
		slotEnd := slotStart.Add(timeutil.SlotWidth)
		status := StatusAvailable
		for _, b := range bookings {
			if b.StartAt.Before(slotEnd) && b.EndAt.After(slotStart) {
				status = StatusBooked
				break
			}
		}
		slots = append(slots, AvailabilitySlot{StartAt: slotStart, EndAt: slotEnd, Status: status})
	}
	return slots, nil
}
