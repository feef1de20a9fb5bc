package model

import "time"

// Desk represents a bookable desk as stored in the `desks` table.
// Desks are created through the administrative endpoint and are
// immutable afterwards; the booking engine only references their IDs.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the desk.
//  Location  – optional free-form location (floor, area).
//  CreatedAt – timestamp of creation.
type Desk struct {
	ID        uint64    // desks.id
	Name      string    // desks.name
	Location  *string   // desks.location (nullable)
	CreatedAt time.Time // desks.created_at
}
