package store

import (
	"context"

	"github.com/seatly/desk-reservation/internal/model"
)

// DeskStore is the persistence surface for desks.
type DeskStore interface {
	// Create persists a desk and populates its storage-assigned ID.
	Create(ctx context.Context, d *model.Desk) error

	// GetByID fetches a single desk; a missing row is reported with the
	// repository's not-found sentinel.
	GetByID(ctx context.Context, id uint64) (model.Desk, error)

	// List returns all desks ordered by ID.
	List(ctx context.Context) ([]model.Desk, error)
}
