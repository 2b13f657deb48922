package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

// InitDB opens/creates the SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    admin BOOLEAN NOT NULL DEFAULT 0,
    active BOOLEAN NOT NULL DEFAULT 1
);
`

const schemaGroups = `
CREATE TABLE IF NOT EXISTS groups (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT UNIQUE NOT NULL
);
`

const schemaUserGroups = `
CREATE TABLE IF NOT EXISTS user_groups (
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    group_id INTEGER NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
    PRIMARY KEY (user_id, group_id)
);
`

const schemaSketches = `
CREATE TABLE IF NOT EXISTS sketches (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'new',
    user_id INTEGER NOT NULL REFERENCES users(id),
    created_at TIMESTAMP NOT NULL
);
`

const schemaSketchPermissions = `
CREATE TABLE IF NOT EXISTS sketch_permissions (
    sketch_id INTEGER NOT NULL REFERENCES sketches(id) ON DELETE CASCADE,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    permission TEXT NOT NULL,
    PRIMARY KEY (sketch_id, user_id, permission)
);
`

const schemaSearchIndices = `
CREATE TABLE IF NOT EXISTS searchindices (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    index_name TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'new',
    public BOOLEAN NOT NULL DEFAULT 0,
    user_id INTEGER NOT NULL REFERENCES users(id),
    created_at TIMESTAMP NOT NULL
);
`

const schemaTimelines = `
CREATE TABLE IF NOT EXISTS timelines (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'new',
    sketch_id INTEGER NOT NULL REFERENCES sketches(id) ON DELETE CASCADE,
    searchindex_id INTEGER NOT NULL REFERENCES searchindices(id) ON DELETE CASCADE
);
`

const schemaSearchTemplates = `
CREATE TABLE IF NOT EXISTS searchtemplates (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT UNIQUE NOT NULL,
    user_id INTEGER REFERENCES users(id),
    query_string TEXT NOT NULL DEFAULT '',
    query_dsl TEXT NOT NULL DEFAULT ''
);
`

const schemaSearchTemplateLabels = `
CREATE TABLE IF NOT EXISTS searchtemplate_labels (
    searchtemplate_id INTEGER NOT NULL REFERENCES searchtemplates(id) ON DELETE CASCADE,
    label TEXT NOT NULL,
    PRIMARY KEY (searchtemplate_id, label)
);
`

const schemaViews = `
CREATE TABLE IF NOT EXISTS views (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    sketch_id INTEGER NOT NULL REFERENCES sketches(id) ON DELETE CASCADE,
    user_id INTEGER NOT NULL REFERENCES users(id),
    query_string TEXT NOT NULL DEFAULT '',
    query_dsl TEXT NOT NULL DEFAULT '',
    query_filter TEXT NOT NULL DEFAULT '{}',
    created_at TIMESTAMP NOT NULL
);
`

// allTables lists every table in dependency order (parents first).
var allTables = []struct {
	name   string
	schema string
}{
	{"users", schemaUsers},
	{"groups", schemaGroups},
	{"user_groups", schemaUserGroups},
	{"sketches", schemaSketches},
	{"sketch_permissions", schemaSketchPermissions},
	{"searchindices", schemaSearchIndices},
	{"timelines", schemaTimelines},
	{"searchtemplates", schemaSearchTemplates},
	{"searchtemplate_labels", schemaSearchTemplateLabels},
	{"views", schemaViews},
}

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// In case of panic, rollback to avoid leaving an open transaction
		_ = tx.Rollback()
	}()

	for _, table := range allTables {
		if _, err := tx.Exec(table.schema); err != nil {
			return fmt.Errorf("create table %s: %w", table.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}

// DropAll removes every table. Used by "tsctl drop-db" after confirmation.
func DropAll(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin drop transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Children first so foreign keys don't get in the way.
	for i := len(allTables) - 1; i >= 0; i-- {
		if _, err := tx.Exec("DROP TABLE IF EXISTS " + allTables[i].name); err != nil {
			return fmt.Errorf("drop table %s: %w", allTables[i].name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit drop transaction: %w", err)
	}
	return nil
}
