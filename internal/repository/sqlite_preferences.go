package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/productiviquest/internal/db"
	"github.com/alexanderramin/productiviquest/internal/domain"
)

// SQLitePreferencesRepo implements PreferencesRepo using a SQLite database.
// Goals and settings are singleton rows; categories are one row per entry.
type SQLitePreferencesRepo struct {
	db db.DBTX
}

// NewSQLitePreferencesRepo creates a new SQLitePreferencesRepo.
func NewSQLitePreferencesRepo(db db.DBTX) *SQLitePreferencesRepo {
	return &SQLitePreferencesRepo{db: db}
}

func (r *SQLitePreferencesRepo) GetGoals(ctx context.Context) (*domain.Goals, error) {
	var g domain.Goals
	err := r.db.QueryRowContext(ctx, `SELECT daily_productive_hours, max_distracting_hours, focus_session_minutes
		FROM goals WHERE id = 'default'`,
	).Scan(&g.DailyProductiveHours, &g.MaxDistractingHours, &g.FocusSessionMinutes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("goals: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning goals: %w", err)
	}
	return &g, nil
}

func (r *SQLitePreferencesRepo) SaveGoals(ctx context.Context, g domain.Goals) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO goals (id, daily_productive_hours, max_distracting_hours, focus_session_minutes)
		VALUES ('default', ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			daily_productive_hours = excluded.daily_productive_hours,
			max_distracting_hours = excluded.max_distracting_hours,
			focus_session_minutes = excluded.focus_session_minutes`,
		g.DailyProductiveHours, g.MaxDistractingHours, g.FocusSessionMinutes,
	)
	if err != nil {
		return fmt.Errorf("upserting goals: %w", err)
	}
	return nil
}

func (r *SQLitePreferencesRepo) GetCategories(ctx context.Context) (domain.CategoryConfig, error) {
	cfg := domain.CategoryConfig{Productive: []string{}, Distracting: []string{}, Neutral: []string{}}
	rows, err := r.db.QueryContext(ctx, `SELECT category, domain FROM category_domains ORDER BY category, position`)
	if err != nil {
		return cfg, fmt.Errorf("listing category domains: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category, entry string
		if err := rows.Scan(&category, &entry); err != nil {
			return cfg, fmt.Errorf("scanning category domain: %w", err)
		}
		switch domain.Category(category) {
		case domain.CategoryProductive:
			cfg.Productive = append(cfg.Productive, entry)
		case domain.CategoryDistracting:
			cfg.Distracting = append(cfg.Distracting, entry)
		default:
			cfg.Neutral = append(cfg.Neutral, entry)
		}
	}
	if err := rows.Err(); err != nil {
		return cfg, fmt.Errorf("iterating category domains: %w", err)
	}
	return cfg, nil
}

// SaveCategories replaces every category list.
func (r *SQLitePreferencesRepo) SaveCategories(ctx context.Context, c domain.CategoryConfig) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM category_domains`); err != nil {
		return fmt.Errorf("clearing category domains: %w", err)
	}
	for _, cat := range domain.Categories {
		for i, entry := range c.List(cat) {
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO category_domains (category, domain, position) VALUES (?, ?, ?)`,
				string(cat), entry, i)
			if err != nil {
				return fmt.Errorf("inserting %s domain %q: %w", cat, entry, err)
			}
		}
	}
	return nil
}

func (r *SQLitePreferencesRepo) GetSettings(ctx context.Context) (*domain.Settings, error) {
	var s domain.Settings
	var notifications, sound int
	err := r.db.QueryRowContext(ctx,
		`SELECT theme, notifications, sound_enabled FROM settings WHERE id = 'default'`,
	).Scan(&s.Theme, &notifications, &sound)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("settings: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning settings: %w", err)
	}
	s.Notifications = intToBool(notifications)
	s.SoundEnabled = intToBool(sound)
	return &s, nil
}

func (r *SQLitePreferencesRepo) SaveSettings(ctx context.Context, s domain.Settings) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO settings (id, theme, notifications, sound_enabled)
		VALUES ('default', ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			theme = excluded.theme,
			notifications = excluded.notifications,
			sound_enabled = excluded.sound_enabled`,
		s.Theme, boolToInt(s.Notifications), boolToInt(s.SoundEnabled),
	)
	if err != nil {
		return fmt.Errorf("upserting settings: %w", err)
	}
	return nil
}
