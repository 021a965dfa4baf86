package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Timestamps are stored as Unix
// nanoseconds so ordering by updated_at stays precise.
//
// deleted_at is part of the record layout but the application performs
// hard deletes and never writes it.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL UNIQUE,
    count       INTEGER NOT NULL DEFAULT 1 CHECK (count >= 0),
    description TEXT,
    created_at  INTEGER NOT NULL,
    updated_at  INTEGER NOT NULL,
    deleted_at  INTEGER
);

CREATE INDEX IF NOT EXISTS idx_items_updated_at ON items(updated_at DESC);
`

// migrations is a list of SQL statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at
// the end.
var migrations []string

// Migrate runs the database schema migrations.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
