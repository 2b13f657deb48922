package models

import "time"

// Sketch lifecycle statuses.
const (
	StatusNew      = "new"
	StatusReady    = "ready"
	StatusArchived = "archived"
	StatusDeleted  = "deleted"
	StatusFail     = "fail"
)

// Sketch is an investigation workspace grouping one or more timelines.
type Sketch struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"` // new | ready | archived | deleted
	UserID      int       `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Timeline links a sketch to a search index. Deleting the index cascades
// through its timelines.
type Timeline struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Status        string `json:"status"`
	SketchID      int    `json:"sketch_id"`
	SearchIndexID int    `json:"searchindex_id"`
}

// View is a saved search attached to a sketch. QueryFilter holds the
// serialized filter JSON (size, indices, order, chips).
type View struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	SketchID    int       `json:"sketch_id"`
	UserID      int       `json:"user_id"`
	QueryString string    `json:"query_string"`
	QueryDSL    string    `json:"query_dsl,omitempty"`
	QueryFilter string    `json:"query_filter"`
	CreatedAt   time.Time `json:"created_at"`
}
