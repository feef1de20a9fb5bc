package model

import "time"

// Booking records a user's reservation of a desk for a half-open time
// interval [StartAt, EndAt).  Start and end are always minute-truncated
// before persistence; no two bookings for the same desk may overlap.  A
// weekly recurrence request expands into multiple independent Booking
// rows, each fully self-describing.
//
// Fields:
//  ID        – storage-assigned primary key.
//  DeskID    – desk being reserved.
//  UserID    – owner of the reservation.
//  StartAt   – inclusive start instant (minute precision).
//  EndAt     – exclusive end instant (minute precision).
//  CreatedAt – creation timestamp.
type Booking struct {
	ID        uint64    // bookings.id
	DeskID    uint64    // bookings.desk_id
	UserID    uint64    // bookings.user_id
	StartAt   time.Time // bookings.start_at
	EndAt     time.Time // bookings.end_at
	CreatedAt time.Time // bookings.created_at
}
