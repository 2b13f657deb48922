package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"timesketch/internal/models"
)

type SketchSQLite struct {
	db *sql.DB
}

func NewSketchSQLite(db *sql.DB) *SketchSQLite { return &SketchSQLite{db: db} }

var _ SketchRepo = (*SketchSQLite)(nil)

const (
	listSketchesSQL = `
SELECT id, name, description, status, user_id, created_at
FROM sketches
ORDER BY id`
	selectSketchSQL = `
SELECT id, name, description, status, user_id, created_at
FROM sketches
WHERE id = ?`
	insertSketchPermissionSQL = `
INSERT OR IGNORE INTO sketch_permissions (sketch_id, user_id, permission) VALUES (?, ?, ?)`
	selectSketchIndexNamesSQL = `
SELECT DISTINCT si.index_name
FROM searchindices si
JOIN timelines t ON t.searchindex_id = si.id
WHERE t.sketch_id = ?
ORDER BY si.index_name`
)

func (r *SketchSQLite) List(ctx context.Context) ([]models.Sketch, error) {
	rows, err := r.db.QueryContext(ctx, listSketchesSQL)
	if err != nil {
		return nil, fmt.Errorf("list sketches: %w", err)
	}
	defer rows.Close()

	var out []models.Sketch
	for rows.Next() {
		var s models.Sketch
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Status, &s.UserID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sketch row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a sketch. Returns (nil, nil) if not found.
func (r *SketchSQLite) GetByID(ctx context.Context, id int) (*models.Sketch, error) {
	var s models.Sketch
	err := r.db.QueryRowContext(ctx, selectSketchSQL, id).
		Scan(&s.ID, &s.Name, &s.Description, &s.Status, &s.UserID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select sketch %d: %w", id, err)
	}
	return &s, nil
}

func (r *SketchSQLite) GrantPermission(ctx context.Context, sketchID, userID int, permission string) error {
	if _, err := r.db.ExecContext(ctx, insertSketchPermissionSQL, sketchID, userID, permission); err != nil {
		return fmt.Errorf("grant %q on sketch %d to user %d: %w", permission, sketchID, userID, err)
	}
	return nil
}

func (r *SketchSQLite) IndexNames(ctx context.Context, sketchID int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, selectSketchIndexNamesSQL, sketchID)
	if err != nil {
		return nil, fmt.Errorf("list index names for sketch %d: %w", sketchID, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan index name: %w", err)
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
