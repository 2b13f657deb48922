package models

import "time"

// SearchIndex maps a datastore index to its Timesketch metadata. Public
// indices are readable by every account.
type SearchIndex struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IndexName   string    `json:"index_name"`
	Status      string    `json:"status"`
	UserID      int       `json:"user_id"`
	Public      bool      `json:"public"`
	CreatedAt   time.Time `json:"created_at"`
}

// SearchTemplate is a reusable saved query, optionally tagged with labels
// such as "supported_os:Windows" or "remote_template".
type SearchTemplate struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	UserID      int      `json:"user_id,omitempty"`
	QueryString string   `json:"query_string"`
	QueryDSL    string   `json:"query_dsl,omitempty"`
	Labels      []string `json:"labels,omitempty"`
}
