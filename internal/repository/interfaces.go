package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/productiviquest/internal/domain"
)

// Top-level state keys tracked in state_keys. A key is seeded once and
// never overwritten by defaults afterwards.
const (
	KeyDailyStats   = "dailyStats"
	KeyWeeklyStats  = "weeklyStats"
	KeyAchievements = "achievements"
	KeyLevel        = "level"
	KeyExperience   = "experience"
	KeyStreak       = "streak"
	KeyGoals        = "goals"
	KeyCategories   = "categories"
	KeySettings     = "settings"
)

// AllStateKeys lists every top-level key in seeding order.
var AllStateKeys = []string{
	KeyDailyStats, KeyWeeklyStats, KeyAchievements,
	KeyLevel, KeyExperience, KeyStreak,
	KeyGoals, KeyCategories, KeySettings,
}

type DailyStatsRepo interface {
	GetCurrent(ctx context.Context) (*domain.DailyStats, error)
	// SaveCurrent writes counters and score for the current day and inserts
	// any sessions not stored yet. Stored sessions are never rewritten.
	SaveCurrent(ctx context.Context, stats domain.DailyStats) error
	// ArchiveCurrent moves the current day into the archive.
	ArchiveCurrent(ctx context.Context, at time.Time) error
	// DiscardCurrent drops the current day and its sessions.
	DiscardCurrent(ctx context.Context) error
	ListArchived(ctx context.Context) (domain.WeeklyStats, error)
	// TrimArchived deletes the oldest archived days beyond keep.
	TrimArchived(ctx context.Context, keep int) (int64, error)
}

type AchievementRepo interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, ids []string, at time.Time) error
}

type ProgressionRepo interface {
	Get(ctx context.Context) (*domain.Progression, error)
	Save(ctx context.Context, p domain.Progression) error
}

type PreferencesRepo interface {
	GetGoals(ctx context.Context) (*domain.Goals, error)
	SaveGoals(ctx context.Context, g domain.Goals) error
	GetCategories(ctx context.Context) (domain.CategoryConfig, error)
	SaveCategories(ctx context.Context, c domain.CategoryConfig) error
	GetSettings(ctx context.Context) (*domain.Settings, error)
	SaveSettings(ctx context.Context, s domain.Settings) error
}

type StateKeyRepo interface {
	Seeded(ctx context.Context) (map[string]bool, error)
	MarkSeeded(ctx context.Context, keys []string, at time.Time) error
	// ResetAll clears every state table, including the seeded markers.
	ResetAll(ctx context.Context) error
}
