package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"timesketch/internal/models"
)

type ViewSQLite struct {
	db *sql.DB
}

func NewViewSQLite(db *sql.DB) *ViewSQLite { return &ViewSQLite{db: db} }

var _ ViewRepo = (*ViewSQLite)(nil)

const (
	insertViewSQL = `
INSERT INTO views (name, sketch_id, user_id, query_string, query_dsl, query_filter, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	listViewsSQL = `
SELECT id, name, sketch_id, user_id, query_string, query_dsl, query_filter, created_at
FROM views
WHERE sketch_id = ?
ORDER BY id`
	selectViewSQL = `
SELECT id, name, sketch_id, user_id, query_string, query_dsl, query_filter, created_at
FROM views
WHERE sketch_id = ? AND id = ?`
)

func (r *ViewSQLite) Create(ctx context.Context, v models.View) (int, error) {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	if v.QueryFilter == "" {
		v.QueryFilter = "{}"
	}
	res, err := r.db.ExecContext(ctx, insertViewSQL,
		v.Name, v.SketchID, v.UserID, v.QueryString, v.QueryDSL, v.QueryFilter, v.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert view %q: %w", v.Name, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for view %q: %w", v.Name, err)
	}
	return int(lastID), nil
}

func (r *ViewSQLite) ListBySketch(ctx context.Context, sketchID int) ([]models.View, error) {
	rows, err := r.db.QueryContext(ctx, listViewsSQL, sketchID)
	if err != nil {
		return nil, fmt.Errorf("list views for sketch %d: %w", sketchID, err)
	}
	defer rows.Close()

	var out []models.View
	for rows.Next() {
		var v models.View
		if err := rows.Scan(&v.ID, &v.Name, &v.SketchID, &v.UserID,
			&v.QueryString, &v.QueryDSL, &v.QueryFilter, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan view row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a view scoped to its sketch. Returns (nil, nil) if not
// found.
func (r *ViewSQLite) GetByID(ctx context.Context, sketchID, viewID int) (*models.View, error) {
	var v models.View
	err := r.db.QueryRowContext(ctx, selectViewSQL, sketchID, viewID).
		Scan(&v.ID, &v.Name, &v.SketchID, &v.UserID,
			&v.QueryString, &v.QueryDSL, &v.QueryFilter, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select view %d for sketch %d: %w", viewID, sketchID, err)
	}
	return &v, nil
}
