package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"timesketch/internal/models"
)

type GroupSQLite struct {
	db *sql.DB
}

func NewGroupSQLite(db *sql.DB) *GroupSQLite { return &GroupSQLite{db: db} }

var _ GroupRepo = (*GroupSQLite)(nil)

const (
	insertGroupSQL       = `INSERT INTO groups (name) VALUES (?)`
	selectGroupByNameSQL = `SELECT id, name FROM groups WHERE name = ?`
	listGroupsSQL        = `SELECT id, name FROM groups ORDER BY name`

	insertMemberSQL = `INSERT OR IGNORE INTO user_groups (user_id, group_id) VALUES (?, ?)`
	deleteMemberSQL = `DELETE FROM user_groups WHERE user_id = ? AND group_id = ?`
	listMembersSQL  = `
SELECT u.id, u.username, u.password_hash, u.admin, u.active
FROM users u
JOIN user_groups ug ON ug.user_id = u.id
WHERE ug.group_id = ?
ORDER BY u.username`
)

func (r *GroupSQLite) Create(ctx context.Context, name string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertGroupSQL, name)
	if err != nil {
		return 0, fmt.Errorf("insert group %q: %w", name, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for group %q: %w", name, err)
	}
	return int(lastID), nil
}

// GetByName fetches a group by name. Returns (nil, nil) if not found.
func (r *GroupSQLite) GetByName(ctx context.Context, name string) (*models.Group, error) {
	var g models.Group
	err := r.db.QueryRowContext(ctx, selectGroupByNameSQL, name).Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select group %q: %w", name, err)
	}
	return &g, nil
}

func (r *GroupSQLite) List(ctx context.Context) ([]models.Group, error) {
	rows, err := r.db.QueryContext(ctx, listGroupsSQL)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var out []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan group row: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AddMember inserts the membership row. Reports false when the user already
// was a member (INSERT OR IGNORE touched no rows).
func (r *GroupSQLite) AddMember(ctx context.Context, groupID, userID int) (bool, error) {
	res, err := r.db.ExecContext(ctx, insertMemberSQL, userID, groupID)
	if err != nil {
		return false, fmt.Errorf("add user %d to group %d: %w", userID, groupID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected adding member: %w", err)
	}
	return n > 0, nil
}

// RemoveMember deletes the membership row. Reports false when the user was
// not a member.
func (r *GroupSQLite) RemoveMember(ctx context.Context, groupID, userID int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteMemberSQL, userID, groupID)
	if err != nil {
		return false, fmt.Errorf("remove user %d from group %d: %w", userID, groupID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected removing member: %w", err)
	}
	return n > 0, nil
}

func (r *GroupSQLite) Members(ctx context.Context, groupID int) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, listMembersSQL, groupID)
	if err != nil {
		return nil, fmt.Errorf("list members of group %d: %w", groupID, err)
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Admin, &u.Active); err != nil {
			return nil, fmt.Errorf("scan member row: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
