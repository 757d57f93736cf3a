package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/productiviquest/internal/db"
)

// SQLiteAchievementRepo implements AchievementRepo using a SQLite database.
type SQLiteAchievementRepo struct {
	db db.DBTX
}

// NewSQLiteAchievementRepo creates a new SQLiteAchievementRepo.
func NewSQLiteAchievementRepo(db db.DBTX) *SQLiteAchievementRepo {
	return &SQLiteAchievementRepo{db: db}
}

// List returns unlocked achievement ids in unlock order.
func (r *SQLiteAchievementRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM achievements ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("listing achievements: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning achievement: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating achievements: %w", err)
	}
	return ids, nil
}

// Add appends ids after the existing ones. Ids already unlocked are skipped.
func (r *SQLiteAchievementRepo) Add(ctx context.Context, ids []string, at time.Time) error {
	var next int
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), -1) + 1 FROM achievements`).Scan(&next); err != nil {
		return fmt.Errorf("reading achievement sequence: %w", err)
	}
	for _, id := range ids {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO achievements (id, seq, unlocked_at) VALUES (?, ?, ?) ON CONFLICT(id) DO NOTHING`,
			id, next, formatTime(at))
		if err != nil {
			return fmt.Errorf("inserting achievement %s: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			next++
		}
	}
	return nil
}
