package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/productiviquest/internal/db"
	"github.com/alexanderramin/productiviquest/internal/domain"
)

// SQLiteProgressionRepo implements ProgressionRepo using a SQLite database.
type SQLiteProgressionRepo struct {
	db db.DBTX
}

// NewSQLiteProgressionRepo creates a new SQLiteProgressionRepo.
func NewSQLiteProgressionRepo(db db.DBTX) *SQLiteProgressionRepo {
	return &SQLiteProgressionRepo{db: db}
}

func (r *SQLiteProgressionRepo) Get(ctx context.Context) (*domain.Progression, error) {
	var p domain.Progression
	err := r.db.QueryRowContext(ctx,
		`SELECT level, experience, streak FROM progression WHERE id = 'default'`,
	).Scan(&p.Level, &p.Experience, &p.Streak)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("progression: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning progression: %w", err)
	}
	return &p, nil
}

func (r *SQLiteProgressionRepo) Save(ctx context.Context, p domain.Progression) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO progression (id, level, experience, streak)
		VALUES ('default', ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			level = excluded.level,
			experience = excluded.experience,
			streak = excluded.streak`,
		p.Level, p.Experience, p.Streak,
	)
	if err != nil {
		return fmt.Errorf("upserting progression: %w", err)
	}
	return nil
}
