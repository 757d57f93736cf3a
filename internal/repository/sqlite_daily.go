package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/productiviquest/internal/db"
	"github.com/alexanderramin/productiviquest/internal/domain"
)

// SQLiteDailyStatsRepo implements DailyStatsRepo using a SQLite database.
type SQLiteDailyStatsRepo struct {
	db db.DBTX
}

// NewSQLiteDailyStatsRepo creates a new SQLiteDailyStatsRepo.
func NewSQLiteDailyStatsRepo(db db.DBTX) *SQLiteDailyStatsRepo {
	return &SQLiteDailyStatsRepo{db: db}
}

const dailyColumns = `id, date, total_ms, productive_ms, distracting_ms, neutral_ms, score`

func (r *SQLiteDailyStatsRepo) GetCurrent(ctx context.Context) (*domain.DailyStats, error) {
	query := `SELECT ` + dailyColumns + ` FROM daily_stats WHERE archived = 0`
	var id int64
	var d domain.DailyStats
	err := r.db.QueryRowContext(ctx, query).Scan(
		&id, &d.Date, &d.TotalTimeMs, &d.ProductiveTimeMs, &d.DistractingTimeMs, &d.NeutralTimeMs, &d.Score,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("current daily stats: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning current daily stats: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT s.daily_id, s.id, d.date, s.domain, s.category, s.duration_ms, s.timestamp
		FROM sessions s JOIN daily_stats d ON s.daily_id = d.id
		WHERE s.daily_id = ? ORDER BY s.seq`, id)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	grouped, err := scanSessions(rows)
	if err != nil {
		return nil, err
	}
	d.Sessions = grouped[id]
	if d.Sessions == nil {
		d.Sessions = []domain.Session{}
	}
	return &d, nil
}

func (r *SQLiteDailyStatsRepo) SaveCurrent(ctx context.Context, stats domain.DailyStats) error {
	if err := stats.CheckInvariant(); err != nil {
		return err
	}

	var id int64
	var date string
	err := r.db.QueryRowContext(ctx, `SELECT id, date FROM daily_stats WHERE archived = 0`).Scan(&id, &date)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := r.db.ExecContext(ctx, `INSERT INTO daily_stats
			(date, total_ms, productive_ms, distracting_ms, neutral_ms, score, archived)
			VALUES (?, ?, ?, ?, ?, ?, 0)`,
			stats.Date, stats.TotalTimeMs, stats.ProductiveTimeMs, stats.DistractingTimeMs, stats.NeutralTimeMs, stats.Score,
		)
		if err != nil {
			return fmt.Errorf("inserting daily stats: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("reading daily stats id: %w", err)
		}
	case err != nil:
		return fmt.Errorf("loading current daily stats: %w", err)
	case date != stats.Date:
		return fmt.Errorf("%w: current day is %s, cannot save %s", domain.ErrInvariant, date, stats.Date)
	default:
		_, err := r.db.ExecContext(ctx, `UPDATE daily_stats
			SET total_ms = ?, productive_ms = ?, distracting_ms = ?, neutral_ms = ?, score = ?
			WHERE id = ?`,
			stats.TotalTimeMs, stats.ProductiveTimeMs, stats.DistractingTimeMs, stats.NeutralTimeMs, stats.Score, id,
		)
		if err != nil {
			return fmt.Errorf("updating daily stats: %w", err)
		}
	}

	for i, s := range stats.Sessions {
		_, err := r.db.ExecContext(ctx, `INSERT INTO sessions
			(id, daily_id, seq, domain, category, duration_ms, timestamp)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING`,
			s.ID, id, i, s.Domain, string(s.Category), s.DurationMs, formatTime(s.Timestamp),
		)
		if err != nil {
			return fmt.Errorf("inserting session %s: %w", s.ID, err)
		}
	}
	return nil
}

func (r *SQLiteDailyStatsRepo) ArchiveCurrent(ctx context.Context, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE daily_stats SET archived = 1, archived_at = ? WHERE archived = 0`, formatTime(at))
	if err != nil {
		return fmt.Errorf("archiving daily stats: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("archiving daily stats: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("current daily stats: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteDailyStatsRepo) DiscardCurrent(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM daily_stats WHERE archived = 0`); err != nil {
		return fmt.Errorf("discarding daily stats: %w", err)
	}
	return nil
}

func (r *SQLiteDailyStatsRepo) ListArchived(ctx context.Context) (domain.WeeklyStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+dailyColumns+` FROM daily_stats WHERE archived = 1 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing archived days: %w", err)
	}
	var ids []int64
	weekly := domain.WeeklyStats{}
	for rows.Next() {
		var id int64
		var d domain.DailyStats
		if err := rows.Scan(&id, &d.Date, &d.TotalTimeMs, &d.ProductiveTimeMs, &d.DistractingTimeMs, &d.NeutralTimeMs, &d.Score); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning archived day: %w", err)
		}
		ids = append(ids, id)
		weekly = append(weekly, d)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating archived days: %w", err)
	}
	rows.Close()

	// Sessions are loaded in one pass after the day rows are released;
	// the in-memory database runs on a single connection.
	sessRows, err := r.db.QueryContext(ctx, `SELECT s.daily_id, s.id, d.date, s.domain, s.category, s.duration_ms, s.timestamp
		FROM sessions s JOIN daily_stats d ON s.daily_id = d.id
		WHERE d.archived = 1 ORDER BY s.daily_id, s.seq`)
	if err != nil {
		return nil, fmt.Errorf("listing archived sessions: %w", err)
	}
	defer sessRows.Close()

	grouped, err := scanSessions(sessRows)
	if err != nil {
		return nil, err
	}
	for i, id := range ids {
		weekly[i].Sessions = grouped[id]
		if weekly[i].Sessions == nil {
			weekly[i].Sessions = []domain.Session{}
		}
	}
	return weekly, nil
}

func (r *SQLiteDailyStatsRepo) TrimArchived(ctx context.Context, keep int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM daily_stats
		WHERE archived = 1 AND id NOT IN (
			SELECT id FROM daily_stats WHERE archived = 1 ORDER BY id DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("trimming archived days: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("trimming archived days: %w", err)
	}
	return n, nil
}

// scanSessions groups session rows, selected with daily_id first, by day.
func scanSessions(rows *sql.Rows) (map[int64][]domain.Session, error) {
	out := make(map[int64][]domain.Session)
	for rows.Next() {
		var dailyID int64
		var s domain.Session
		var category, ts string
		if err := rows.Scan(&dailyID, &s.ID, &s.Day, &s.Domain, &category, &s.DurationMs, &ts); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		s.Category = domain.Category(category)
		var err error
		if s.Timestamp, err = parseTime(ts, "session timestamp"); err != nil {
			return nil, err
		}
		out[dailyID] = append(out[dailyID], s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return out, nil
}
