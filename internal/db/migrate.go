package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS daily_stats (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		date           TEXT NOT NULL,
		total_ms       INTEGER NOT NULL DEFAULT 0,
		productive_ms  INTEGER NOT NULL DEFAULT 0,
		distracting_ms INTEGER NOT NULL DEFAULT 0,
		neutral_ms     INTEGER NOT NULL DEFAULT 0,
		score          INTEGER NOT NULL DEFAULT 0 CHECK(score BETWEEN 0 AND 100),
		archived       INTEGER NOT NULL DEFAULT 0,
		archived_at    TEXT,
		CHECK(total_ms = productive_ms + distracting_ms + neutral_ms)
	)`,

	// At most one row is the current (non-archived) day.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_daily_stats_current ON daily_stats(archived) WHERE archived = 0`,
	`CREATE INDEX IF NOT EXISTS idx_daily_stats_archived ON daily_stats(archived, id)`,

	`CREATE TABLE IF NOT EXISTS sessions (
		id          TEXT PRIMARY KEY,
		daily_id    INTEGER NOT NULL REFERENCES daily_stats(id) ON DELETE CASCADE,
		seq         INTEGER NOT NULL,
		domain      TEXT NOT NULL,
		category    TEXT NOT NULL
		            CHECK(category IN ('productive','distracting','neutral')),
		duration_ms INTEGER NOT NULL CHECK(duration_ms > 0),
		timestamp   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_daily ON sessions(daily_id, seq)`,

	`CREATE TABLE IF NOT EXISTS achievements (
		id          TEXT PRIMARY KEY,
		seq         INTEGER NOT NULL,
		unlocked_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS progression (
		id         TEXT PRIMARY KEY DEFAULT 'default',
		level      INTEGER NOT NULL DEFAULT 1 CHECK(level >= 1),
		experience INTEGER NOT NULL DEFAULT 0 CHECK(experience >= 0),
		streak     INTEGER NOT NULL DEFAULT 0 CHECK(streak >= 0)
	)`,

	`CREATE TABLE IF NOT EXISTS goals (
		id                     TEXT PRIMARY KEY DEFAULT 'default',
		daily_productive_hours REAL NOT NULL CHECK(daily_productive_hours > 0),
		max_distracting_hours  REAL NOT NULL CHECK(max_distracting_hours > 0),
		focus_session_minutes  REAL NOT NULL CHECK(focus_session_minutes > 0)
	)`,

	`CREATE TABLE IF NOT EXISTS category_domains (
		category TEXT NOT NULL
		         CHECK(category IN ('productive','distracting','neutral')),
		domain   TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (category, domain)
	)`,

	`CREATE TABLE IF NOT EXISTS settings (
		id            TEXT PRIMARY KEY DEFAULT 'default',
		theme         TEXT NOT NULL DEFAULT 'light',
		notifications INTEGER NOT NULL DEFAULT 1,
		sound_enabled INTEGER NOT NULL DEFAULT 1
	)`,

	// Records which top-level state keys have been seeded so defaults are
	// merged in additively and never overwrite existing values.
	`CREATE TABLE IF NOT EXISTS state_keys (
		key       TEXT PRIMARY KEY,
		seeded_at TEXT NOT NULL
	)`,
}
