package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent so the
// whole list runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// A single row (id = 'current') holds the authenticated session.
	`CREATE TABLE IF NOT EXISTS auth_session (
		id               TEXT PRIMARY KEY CHECK(id = 'current'),
		user_id          INTEGER NOT NULL,
		user_name        TEXT NOT NULL DEFAULT '',
		email            TEXT NOT NULL DEFAULT '',
		role             TEXT NOT NULL DEFAULT '',
		access_token     TEXT NOT NULL,
		authenticated_at TEXT NOT NULL,
		expires_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS schema_meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`INSERT OR IGNORE INTO schema_meta (key, value) VALUES ('schema_version', '1')`,
}
