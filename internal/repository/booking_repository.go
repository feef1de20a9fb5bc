package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/seatly/desk-reservation/internal/model"
	"github.com/seatly/desk-reservation/internal/store"
)

// BookingRepo provides persistence for bookings and implements
// store.BookingStore for the booking engine.  Both overlap queries use
// the identical half-open predicate `start_at < ? AND end_at > ?`; it is
// the single source of truth for conflict rejection and availability
// classification.  All timestamp columns are DATETIME read back as UTC
// (loc=UTC on the connection), matching the naive wire format.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// FindOverlapping returns all bookings for the desk overlapping the
// half-open interval [start, end), ordered by start time.
func (r *BookingRepo) FindOverlapping(ctx context.Context, deskID uint64, start, end time.Time) ([]model.Booking, error) {
	const q = `SELECT id, desk_id, user_id, start_at, end_at, created_at
               FROM bookings
               WHERE desk_id = ? AND start_at < ? AND end_at > ?
               ORDER BY start_at`
	rows, err := r.db.QueryContext(ctx, q, deskID, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// InTx runs fn within a single transaction and commits only when fn
// returns nil.  Any error from fn rolls back every write made through
// the transaction, so a conflict on the third slot of a recurrence
// leaves no partial reservations behind.
func (r *BookingRepo) InTx(ctx context.Context, fn func(tx store.BookingTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(&bookingTx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// ListByUser returns all bookings made by the given user, newest slot
// first.  When no bookings exist, an empty slice is returned.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	const q = `SELECT id, desk_id, user_id, start_at, end_at, created_at
               FROM bookings
               WHERE user_id = ?
               ORDER BY start_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// bookingTx adapts a *sql.Tx to the store.BookingTx contract.
type bookingTx struct {
	tx *sql.Tx
}

// ExistsOverlapping reports whether any booking for the desk overlaps
// the half-open interval [start, end).
func (t *bookingTx) ExistsOverlapping(ctx context.Context, deskID uint64, start, end time.Time) (bool, error) {
	const q = `SELECT EXISTS(
                 SELECT 1 FROM bookings
                 WHERE desk_id = ? AND start_at < ? AND end_at > ?)`
	var exists bool
	if err := t.tx.QueryRowContext(ctx, q, deskID, end, start).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Insert persists a booking within the transaction and populates its
// generated ID.  MySQL duplicate-key errors on the (desk_id, start_at)
// unique index surface as store.ErrDuplicateSlot.
func (t *bookingTx) Insert(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (desk_id, user_id, start_at, end_at) VALUES (?, ?, ?, ?)`
	res, err := t.tx.ExecContext(ctx, q, b.DeskID, b.UserID, b.StartAt, b.EndAt)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return store.ErrDuplicateSlot
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

func scanBookings(rows *sql.Rows) ([]model.Booking, error) {
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.DeskID, &b.UserID, &b.StartAt, &b.EndAt, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}
