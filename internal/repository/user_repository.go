package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/household-market/internal/model"
)

const userColumns = "user_id, username, password, role, email, phone, created_at"

// UserRepo reads and writes the `users` table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

func scanUser(s rowScanner) (model.User, error) {
	var u model.User
	err := s.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Email, &u.Phone, &u.CreatedAt)
	return u, err
}

// Create inserts u, whose PasswordHash must already be a bcrypt digest, and
// returns the new id.  A unique-index collision on email yields ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u model.User) (uint64, error) {
	id, err := insertRow(ctx, r.DB,
		"INSERT INTO users (username, password, role, email, phone) VALUES (?, ?, ?, ?, ?)",
		u.Username, u.PasswordHash, u.Role, u.Email, u.Phone)
	if isDuplicate(err) {
		return 0, ErrEmailExists
	}
	return id, err
}

// EmailExists reports whether any user already registered with email.
func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", email).Scan(&exists)
	return exists, err
}

// GetByEmail fetches a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return queryOne(ctx, r.DB, scanUser,
		"SELECT "+userColumns+" FROM users WHERE email = ? LIMIT 1", email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return queryOne(ctx, r.DB, scanUser,
		"SELECT "+userColumns+" FROM users WHERE user_id = ? LIMIT 1", id)
}

// List returns every user.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	return queryAll(ctx, r.DB, scanUser, "SELECT "+userColumns+" FROM users")
}

// Update overwrites the mutable columns of user u.ID.  When withPassword is
// false the stored hash is left untouched.
func (r *UserRepo) Update(ctx context.Context, u model.User, withPassword bool) error {
	var err error
	if withPassword {
		_, err = execRows(ctx, r.DB,
			"UPDATE users SET username = ?, password = ?, role = ?, email = ?, phone = ? WHERE user_id = ?",
			u.Username, u.PasswordHash, u.Role, u.Email, u.Phone, u.ID)
	} else {
		_, err = execRows(ctx, r.DB,
			"UPDATE users SET username = ?, role = ?, email = ?, phone = ? WHERE user_id = ?",
			u.Username, u.Role, u.Email, u.Phone, u.ID)
	}
	if isDuplicate(err) {
		return ErrEmailExists
	}
	return err
}

// Delete removes user id.  Rows referencing the user are not touched.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	_, err := execRows(ctx, r.DB, "DELETE FROM users WHERE user_id = ?", id)
	return err
}
