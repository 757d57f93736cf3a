package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"daily_stats", "sessions", "achievements", "progression", "goals", "category_domains", "settings", "state_keys"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_daily_stats_current", "idx_daily_stats_archived", "idx_sessions_daily"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_DailyStatsTotalsCheck(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO daily_stats (date, total_ms, productive_ms, distracting_ms, neutral_ms)
		VALUES ('2026-10-16', 10, 3, 3, 3)`)
	assert.Error(t, err, "totals that do not add up should be rejected")

	_, err = db.Exec(`INSERT INTO daily_stats (date, total_ms, productive_ms, distracting_ms, neutral_ms)
		VALUES ('2026-10-16', 9, 3, 3, 3)`)
	assert.NoError(t, err)
}

func TestMigrate_SingleCurrentDay(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO daily_stats (date) VALUES ('2026-10-15')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO daily_stats (date) VALUES ('2026-10-16')`)
	assert.Error(t, err, "only one non-archived row may exist")

	_, err = db.Exec(`INSERT INTO daily_stats (date, archived) VALUES ('2026-10-14', 1)`)
	assert.NoError(t, err, "archived rows are unconstrained")
}

func TestMigrate_SessionConstraints(t *testing.T) {
	db := openTestDB(t)

	res, err := db.Exec(`INSERT INTO daily_stats (date) VALUES ('2026-10-16')`)
	require.NoError(t, err)
	dailyID, err := res.LastInsertId()
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO sessions (id, daily_id, seq, domain, category, duration_ms, timestamp)
		VALUES ('s1', ?, 1, 'github.com', 'fun', 6000, '2026-10-16T10:00:00Z')`, dailyID)
	assert.Error(t, err, "invalid category should be rejected")

	_, err = db.Exec(`INSERT INTO sessions (id, daily_id, seq, domain, category, duration_ms, timestamp)
		VALUES ('s1', ?, 1, 'github.com', 'productive', 0, '2026-10-16T10:00:00Z')`, dailyID)
	assert.Error(t, err, "non-positive duration should be rejected")

	_, err = db.Exec(`INSERT INTO sessions (id, daily_id, seq, domain, category, duration_ms, timestamp)
		VALUES ('s1', 999, 1, 'github.com', 'productive', 6000, '2026-10-16T10:00:00Z')`)
	assert.Error(t, err, "unknown day should violate the foreign key")
}

func TestMigrate_GoalsMustBePositive(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO goals (id, daily_productive_hours, max_distracting_hours, focus_session_minutes)
		VALUES ('default', 0, 2, 25)`)
	assert.Error(t, err)
}
