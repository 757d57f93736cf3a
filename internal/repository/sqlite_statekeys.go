package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/productiviquest/internal/db"
)

// SQLiteStateKeyRepo implements StateKeyRepo using a SQLite database.
type SQLiteStateKeyRepo struct {
	db db.DBTX
}

// NewSQLiteStateKeyRepo creates a new SQLiteStateKeyRepo.
func NewSQLiteStateKeyRepo(db db.DBTX) *SQLiteStateKeyRepo {
	return &SQLiteStateKeyRepo{db: db}
}

func (r *SQLiteStateKeyRepo) Seeded(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM state_keys`)
	if err != nil {
		return nil, fmt.Errorf("listing state keys: %w", err)
	}
	defer rows.Close()

	seeded := make(map[string]bool)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scanning state key: %w", err)
		}
		seeded[key] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating state keys: %w", err)
	}
	return seeded, nil
}

func (r *SQLiteStateKeyRepo) MarkSeeded(ctx context.Context, keys []string, at time.Time) error {
	for _, key := range keys {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO state_keys (key, seeded_at) VALUES (?, ?) ON CONFLICT(key) DO NOTHING`,
			key, formatTime(at))
		if err != nil {
			return fmt.Errorf("marking state key %s: %w", key, err)
		}
	}
	return nil
}

// resetTables are cleared in dependency order.
var resetTables = []string{
	"sessions", "daily_stats", "achievements", "progression",
	"goals", "category_domains", "settings", "state_keys",
}

func (r *SQLiteStateKeyRepo) ResetAll(ctx context.Context) error {
	for _, table := range resetTables {
		if _, err := r.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}
