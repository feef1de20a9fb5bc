package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/seatly/desk-reservation/internal/model"
	"github.com/seatly/desk-reservation/internal/utils"
)

// UserRepo manages persistence for user accounts.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a bcrypt-hashed password and returns its ID.
// The email is normalized to lower case before insertion; a duplicate
// email surfaces as ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, password string, fullName *string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, full_name) VALUES (?,?,?)",
		email, hash, fullName)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT id, email, password_hash, full_name, created_at, updated_at FROM users WHERE email=? LIMIT 1`
	return r.scanUser(r.DB.QueryRowContext(ctx, q, email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	const q = `SELECT id, email, password_hash, full_name, created_at, updated_at FROM users WHERE id=? LIMIT 1`
	return r.scanUser(r.DB.QueryRowContext(ctx, q, id))
}

func (r *UserRepo) scanUser(row *sql.Row) (model.User, error) {
	var (
		u        model.User
		fullName sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &fullName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	if fullName.Valid {
		fn := fullName.String
		u.FullName = &fn
	}
	return u, nil
}
