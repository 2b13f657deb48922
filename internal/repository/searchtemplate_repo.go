package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"timesketch/internal/models"
)

type SearchTemplateSQLite struct {
	db *sql.DB
}

func NewSearchTemplateSQLite(db *sql.DB) *SearchTemplateSQLite {
	return &SearchTemplateSQLite{db: db}
}

var _ SearchTemplateRepo = (*SearchTemplateSQLite)(nil)

const (
	listTemplatesSQL = `
SELECT id, name, COALESCE(user_id, 0), query_string, query_dsl
FROM searchtemplates
ORDER BY name`
	selectTemplateByNameSQL = `
SELECT id, name, COALESCE(user_id, 0), query_string, query_dsl
FROM searchtemplates
WHERE name = ?`
	insertTemplateSQL = `
INSERT INTO searchtemplates (name, user_id, query_string, query_dsl) VALUES (?, ?, ?, ?)`

	selectTemplateLabelsSQL = `
SELECT label FROM searchtemplate_labels WHERE searchtemplate_id = ? ORDER BY label`
	insertTemplateLabelSQL = `
INSERT OR IGNORE INTO searchtemplate_labels (searchtemplate_id, label) VALUES (?, ?)`
)

// List returns all templates with their labels loaded.
func (r *SearchTemplateSQLite) List(ctx context.Context) ([]models.SearchTemplate, error) {
	rows, err := r.db.QueryContext(ctx, listTemplatesSQL)
	if err != nil {
		return nil, fmt.Errorf("list search templates: %w", err)
	}
	defer rows.Close()

	var out []models.SearchTemplate
	for rows.Next() {
		var t models.SearchTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.UserID, &t.QueryString, &t.QueryDSL); err != nil {
			return nil, fmt.Errorf("scan search template row: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		labels, err := r.labels(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Labels = labels
	}
	return out, nil
}

// GetByName fetches a template by name. Returns (nil, nil) if not found.
func (r *SearchTemplateSQLite) GetByName(ctx context.Context, name string) (*models.SearchTemplate, error) {
	var t models.SearchTemplate
	err := r.db.QueryRowContext(ctx, selectTemplateByNameSQL, name).
		Scan(&t.ID, &t.Name, &t.UserID, &t.QueryString, &t.QueryDSL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select search template %q: %w", name, err)
	}
	labels, err := r.labels(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Labels = labels
	return &t, nil
}

// Create inserts a template and its labels in a single transaction.
func (r *SearchTemplateSQLite) Create(ctx context.Context, tmpl models.SearchTemplate) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin template transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var userID any
	if tmpl.UserID != 0 {
		userID = tmpl.UserID
	}
	res, err := tx.ExecContext(ctx, insertTemplateSQL, tmpl.Name, userID, tmpl.QueryString, tmpl.QueryDSL)
	if err != nil {
		return 0, fmt.Errorf("insert search template %q: %w", tmpl.Name, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for template %q: %w", tmpl.Name, err)
	}

	for _, label := range tmpl.Labels {
		if _, err := tx.ExecContext(ctx, insertTemplateLabelSQL, lastID, label); err != nil {
			return 0, fmt.Errorf("insert label %q for template %q: %w", label, tmpl.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit template transaction: %w", err)
	}
	return int(lastID), nil
}

func (r *SearchTemplateSQLite) labels(ctx context.Context, templateID int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, selectTemplateLabelsSQL, templateID)
	if err != nil {
		return nil, fmt.Errorf("list labels for template %d: %w", templateID, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("scan label row: %w", err)
		}
		out = append(out, label)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
