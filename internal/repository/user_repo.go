package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"timesketch/internal/models"
)

type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite { return &UserSQLite{db: db} }

// Ensure implementation of UserRepo interface at compile time.
var _ UserRepo = (*UserSQLite)(nil)

const (
	insertUserSQL = `INSERT INTO users (username, password_hash, admin, active) VALUES (?, ?, 0, 1)`
	selectUserSQL = `SELECT id, username, password_hash, admin, active FROM users WHERE username = ?`
	listUsersSQL  = `SELECT id, username, password_hash, admin, active FROM users ORDER BY username`

	updateUserPasswordSQL = `UPDATE users SET password_hash = ? WHERE id = ?`
	updateUserAdminSQL    = `UPDATE users SET admin = ? WHERE id = ?`
	updateUserActiveSQL   = `UPDATE users SET active = ? WHERE id = ?`
)

// Create inserts a new user and returns its ID.
func (r *UserSQLite) Create(ctx context.Context, username, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, username, passwordHash)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserSQLite) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserSQL, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Admin, &u.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &u, nil
}

// List returns all users ordered by username.
func (r *UserSQLite) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, listUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Admin, &u.Active); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserSQLite) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	if _, err := r.db.ExecContext(ctx, updateUserPasswordSQL, passwordHash, id); err != nil {
		return fmt.Errorf("update password for user %d: %w", id, err)
	}
	return nil
}

func (r *UserSQLite) SetAdmin(ctx context.Context, id int, admin bool) error {
	if _, err := r.db.ExecContext(ctx, updateUserAdminSQL, admin, id); err != nil {
		return fmt.Errorf("set admin=%t for user %d: %w", admin, id, err)
	}
	return nil
}

func (r *UserSQLite) SetActive(ctx context.Context, id int, active bool) error {
	if _, err := r.db.ExecContext(ctx, updateUserActiveSQL, active, id); err != nil {
		return fmt.Errorf("set active=%t for user %d: %w", active, id, err)
	}
	return nil
}
