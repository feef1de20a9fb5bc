package service

import (
	"context"
	"time"

	"github.com/seatly/desk-reservation/internal/model"
	"github.com/seatly/desk-reservation/internal/store"
)

// fakeStore is an in-memory store.BookingStore.  Writes made inside InTx
// are buffered and applied to bookings only when the callback succeeds,
// mirroring the commit/rollback behavior of the MySQL implementation.
type fakeStore struct {
	bookings []model.Booking
	nextID   uint64

	// insertErr, when set, is returned by the n-th Insert call (1-based)
	// to simulate storage failures such as the duplicate-key backstop.
	insertErr   error
	insertErrOn int

	findCalls int
}

func newFakeStore(existing ...model.Booking) *fakeStore {
	f := &fakeStore{nextID: 1}
	for _, b := range existing {
		b.ID = f.nextID
		f.nextID++
		f.bookings = append(f.bookings, b)
	}
	return f
}

func overlapsInterval(b model.Booking, start, end time.Time) bool {
	return b.StartAt.Before(end) && b.EndAt.After(start)
}

func (f *fakeStore) FindOverlapping(ctx context.Context, deskID uint64, start, end time.Time) ([]model.Booking, error) {
	f.findCalls++
	out := make([]model.Booking, 0)
	for _, b := range f.bookings {
		if b.DeskID == deskID && overlapsInterval(b, start, end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) InTx(ctx context.Context, fn func(tx store.BookingTx) error) error {
	tx := &fakeTx{store: f}
	if err := fn(tx); err != nil {
		return err
	}
	f.bookings = append(f.bookings, tx.pending...)
	return nil
}

type fakeTx struct {
	store   *fakeStore
	pending []model.Booking
	inserts int
}

func (t *fakeTx) ExistsOverlapping(ctx context.Context, deskID uint64, start, end time.Time) (bool, error) {
	for _, b := range t.store.bookings {
		if b.DeskID == deskID && overlapsInterval(b, start, end) {
			return true, nil
		}
	}
	for _, b := range t.pending {
		if b.DeskID == deskID && overlapsInterval(b, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (t *fakeTx) Insert(ctx context.Context, b *model.Booking) error {
	t.inserts++
	if t.store.insertErr != nil && t.inserts == t.store.insertErrOn {
		return t.store.insertErr
	}
	b.ID = t.store.nextID
	t.store.nextID++
	t.pending = append(t.pending, *b)
	return nil
}
