package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"timesketch/internal/models"
)

type SearchIndexSQLite struct {
	db *sql.DB
}

func NewSearchIndexSQLite(db *sql.DB) *SearchIndexSQLite { return &SearchIndexSQLite{db: db} }

var _ SearchIndexRepo = (*SearchIndexSQLite)(nil)

const (
	insertSearchIndexSQL = `
INSERT INTO searchindices (name, description, index_name, status, public, user_id, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	selectIndexByNameAndIndexSQL = `
SELECT id, name, description, index_name, status, public, user_id, created_at
FROM searchindices
WHERE name = ? AND index_name = ?`
	selectIndexByIndexNameSQL = `
SELECT id, name, description, index_name, status, public, user_id, created_at
FROM searchindices
WHERE index_name = ?`
	deleteSearchIndexSQL = `DELETE FROM searchindices WHERE id = ?`

	selectTimelinesByIndexSQL = `
SELECT id, name, status, sketch_id, searchindex_id
FROM timelines
WHERE searchindex_id = ?`
	deleteTimelineSQL = `DELETE FROM timelines WHERE id = ?`
)

func (r *SearchIndexSQLite) Create(ctx context.Context, idx models.SearchIndex) (int, error) {
	if idx.CreatedAt.IsZero() {
		idx.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertSearchIndexSQL,
		idx.Name, idx.Description, idx.IndexName, idx.Status, idx.Public, idx.UserID, idx.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert search index %q: %w", idx.Name, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for search index %q: %w", idx.Name, err)
	}
	return int(lastID), nil
}

// GetByNameAndIndex fetches by the (name, index_name) pair used for the
// uniqueness check in "tsctl add-index". Returns (nil, nil) if not found.
func (r *SearchIndexSQLite) GetByNameAndIndex(ctx context.Context, name, indexName string) (*models.SearchIndex, error) {
	return r.getOne(ctx, selectIndexByNameAndIndexSQL, name, indexName)
}

// GetByIndexName fetches by the datastore index name. Returns (nil, nil) if
// not found.
func (r *SearchIndexSQLite) GetByIndexName(ctx context.Context, indexName string) (*models.SearchIndex, error) {
	return r.getOne(ctx, selectIndexByIndexNameSQL, indexName)
}

func (r *SearchIndexSQLite) getOne(ctx context.Context, query string, args ...any) (*models.SearchIndex, error) {
	var idx models.SearchIndex
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&idx.ID, &idx.Name, &idx.Description, &idx.IndexName,
		&idx.Status, &idx.Public, &idx.UserID, &idx.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select search index: %w", err)
	}
	return &idx, nil
}

func (r *SearchIndexSQLite) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deleteSearchIndexSQL, id); err != nil {
		return fmt.Errorf("delete search index %d: %w", id, err)
	}
	return nil
}

func (r *SearchIndexSQLite) TimelinesByIndex(ctx context.Context, searchIndexID int) ([]models.Timeline, error) {
	rows, err := r.db.QueryContext(ctx, selectTimelinesByIndexSQL, searchIndexID)
	if err != nil {
		return nil, fmt.Errorf("list timelines for index %d: %w", searchIndexID, err)
	}
	defer rows.Close()

	var out []models.Timeline
	for rows.Next() {
		var t models.Timeline
		if err := rows.Scan(&t.ID, &t.Name, &t.Status, &t.SketchID, &t.SearchIndexID); err != nil {
			return nil, fmt.Errorf("scan timeline row: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SearchIndexSQLite) DeleteTimeline(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deleteTimelineSQL, id); err != nil {
		return fmt.Errorf("delete timeline %d: %w", id, err)
	}
	return nil
}
