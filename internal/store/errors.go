package store

import "errors"

// ErrDuplicateSlot is returned by BookingTx.Insert when the storage-level
// uniqueness constraint on (desk_id, start_at) rejects a row.  It is the
// backstop for races that slip past the application-level overlap check;
// the engine translates it into the same conflict outcome as a detected
// overlap, never into a generic storage error.
var ErrDuplicateSlot = errors.New("duplicate booking slot")
