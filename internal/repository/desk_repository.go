package repository

import (
	"context"
	"database/sql"

	"github.com/seatly/desk-reservation/internal/model"
)

// DeskRepo manages persistence for desks.  Desks are created once through
// the administrative endpoint and never mutated afterwards, so the
// repository only needs insert and read operations.
type DeskRepo struct {
	db *sql.DB
}

// NewDeskRepo returns a new DeskRepo bound to the given database.
func NewDeskRepo(db *sql.DB) *DeskRepo { return &DeskRepo{db: db} }

// Create inserts a new desk and populates its generated ID.
func (r *DeskRepo) Create(ctx context.Context, d *model.Desk) error {
	const q = `INSERT INTO desks (name, location) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, d.Name, d.Location)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return nil
}

// GetByID fetches a single desk.  ErrDeskNotFound is returned when no
// row exists.
func (r *DeskRepo) GetByID(ctx context.Context, id uint64) (model.Desk, error) {
	const q = `SELECT id, name, location, created_at FROM desks WHERE id = ?`
	var (
		d        model.Desk
		location sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.Name, &location, &d.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Desk{}, ErrDeskNotFound
		}
		return model.Desk{}, err
	}
	if location.Valid {
		loc := location.String
		d.Location = &loc
	}
	return d, nil
}

// List returns all desks ordered by ID.  Ordering by the surrogate key
// keeps output deterministic for clients rendering the desk grid.
func (r *DeskRepo) List(ctx context.Context) ([]model.Desk, error) {
	const q = `SELECT id, name, location, created_at FROM desks ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	desks := make([]model.Desk, 0)
	for rows.Next() {
		var (
			d        model.Desk
			location sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.Name, &location, &d.CreatedAt); err != nil {
			return nil, err
		}
		if location.Valid {
			loc := location.String
			d.Location = &loc
		}
		desks = append(desks, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return desks, nil
}
