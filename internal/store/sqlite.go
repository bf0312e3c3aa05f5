// Package store provides SQLite-backed persistence for task snapshots.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// schemaV1 defines the initial database schema.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS tasks (
	id                TEXT PRIMARY KEY,
	description       TEXT NOT NULL,
	domain            TEXT NOT NULL,
	estimated_minutes INTEGER NOT NULL,
	deadline_unix     INTEGER,
	status            TEXT NOT NULL DEFAULT 'pending',
	actual_minutes    INTEGER NOT NULL DEFAULT 0,
	completed_at_unix INTEGER NOT NULL DEFAULT 0,
	project_id        TEXT NOT NULL DEFAULT '',
	created_at_unix   INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_status_deadline ON tasks(status, deadline_unix);
CREATE INDEX IF NOT EXISTS idx_tasks_completed_at ON tasks(completed_at_unix);
CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
`

// NewDB opens a SQLite database at the given path with recommended pragmas
// and runs the V1 schema migration.
func NewDB(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Limit connections to 1 for SQLite (WAL allows concurrent reads but single writer).
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}

func migrate(db *sql.DB) error {
	_, err := db.ExecContext(context.Background(), schemaV1)
	return err
}
