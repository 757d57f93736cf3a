package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/productiviquest/internal/domain"
	"github.com/alexanderramin/productiviquest/internal/scoring"
)

var (
	// ErrResetNotConfirmed is returned when a reset is requested without
	// explicit confirmation.
	ErrResetNotConfirmed = errors.New("reset requires explicit confirmation")
	ErrInvalidStreak     = errors.New("streak must not be negative")
)

// RecordResult describes the outcome of one RecordSession call.
type RecordResult struct {
	// Discarded is set when the session was below the minimum length and
	// nothing was written.
	Discarded       bool
	RolledOver      bool
	Session         domain.Session
	Stats           domain.DailyStats
	NewAchievements []string
	Progression     domain.Progression
}

// Recorder is the single writer for tracked time.
type Recorder interface {
	RecordSession(ctx context.Context, host string, d time.Duration, now time.Time) (RecordResult, error)
	// RolloverIfNeeded archives the stored day when now falls on a later
	// calendar day. It reports whether the date moved.
	RolloverIfNeeded(ctx context.Context, now time.Time) (bool, error)
}

// StateService exposes read-only snapshots and the user-facing mutators.
type StateService interface {
	// Init seeds defaults for every state key that has never been written.
	Init(ctx context.Context) error

	Daily(ctx context.Context) (*domain.DailyStats, error)
	Weekly(ctx context.Context) (domain.WeeklyStats, error)
	Achievements(ctx context.Context) ([]string, error)
	Progression(ctx context.Context) (*domain.Progression, error)
	Goals(ctx context.Context) (*domain.Goals, error)
	Categories(ctx context.Context) (domain.CategoryConfig, error)
	Settings(ctx context.Context) (*domain.Settings, error)
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
	GoalProgress(ctx context.Context) (*scoring.GoalProgress, error)

	UpdateGoal(ctx context.Context, key domain.GoalKey, value float64) (*domain.Goals, error)
	AddCategoryDomain(ctx context.Context, category domain.Category, entry string) (domain.CategoryConfig, error)
	RemoveCategoryDomain(ctx context.Context, category domain.Category, entry string) (domain.CategoryConfig, error)
	UpdateSettings(ctx context.Context, s domain.Settings) (*domain.Settings, error)
	SetStreak(ctx context.Context, streak int) (*domain.Progression, error)
	ResetAllState(ctx context.Context, confirmed bool) error
}
