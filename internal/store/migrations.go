package store

import (
	"context"
	"database/sql"
)

// schema contains the DDL for all Baraza tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT PRIMARY KEY,
		user_id    INTEGER NOT NULL,
		email      TEXT NOT NULL,
		role       TEXT NOT NULL,
		token      TEXT NOT NULL,
		client_id  INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		expires_at INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS login_events (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		email      TEXT NOT NULL,
		success    INTEGER NOT NULL,
		role       TEXT NOT NULL DEFAULT '',
		request_id TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at)`,
	`CREATE INDEX IF NOT EXISTS idx_login_events_created_at ON login_events(created_at)`,
}

// migrate applies the schema statements in order.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
