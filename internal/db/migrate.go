package db

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS session_history (
		session_id TEXT PRIMARY KEY,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		duration_seconds REAL NOT NULL,
		focus_seconds REAL NOT NULL,
		distraction_seconds REAL NOT NULL,
		productivity_score INTEGER NOT NULL,
		check_in_count INTEGER NOT NULL,
		tags TEXT NOT NULL DEFAULT '',
		summary TEXT NOT NULL DEFAULT '',
		recorded_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_session_history_start
		ON session_history(start_time)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
