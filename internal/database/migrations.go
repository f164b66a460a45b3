package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order on every start; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS workspaces (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		owner_id TEXT NOT NULL,
		is_public INTEGER NOT NULL DEFAULT 0,
		public_id TEXT UNIQUE,
		is_visible INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_workspaces_owner ON workspaces(owner_id)`,

	`CREATE TABLE IF NOT EXISTS todos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workspace_id INTEGER NOT NULL,
		task TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_completed INTEGER NOT NULL DEFAULT 0,
		"order" INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (workspace_id) REFERENCES workspaces(id) ON DELETE CASCADE,
		UNIQUE (workspace_id, "order")
	)`,

	`CREATE TABLE IF NOT EXISTS subtasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		todo_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		is_completed INTEGER NOT NULL DEFAULT 0,
		"order" INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (todo_id) REFERENCES todos(id) ON DELETE CASCADE,
		UNIQUE (todo_id, "order")
	)`,
}

// Schema returns a copy of the migration statements for test helpers that
// build an in-memory database without going through InitDB.
func Schema() []string {
	out := make([]string, len(schema))
	copy(out, schema)
	return out
}

// runMigrations creates the database schema
func runMigrations(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
