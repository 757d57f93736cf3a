package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/productiviquest/internal/domain"
	"github.com/alexanderramin/productiviquest/internal/repository"
	"github.com/alexanderramin/productiviquest/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_SeedsDefaults(t *testing.T) {
	env := newTestEnv(t)

	snap, err := env.state.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", snap.Daily.Date)
	assert.Empty(t, snap.Weekly)
	assert.Empty(t, snap.Achievements)
	assert.Equal(t, domain.DefaultProgression(), snap.Progression)
	assert.Equal(t, domain.DefaultGoals(), snap.Goals)
	assert.Equal(t, domain.DefaultCategories(), snap.Categories)
	assert.Equal(t, domain.DefaultSettings(), snap.Settings)

	seeded, err := repository.NewSQLiteStateKeyRepo(env.db).Seeded(context.Background())
	require.NoError(t, err)
	for _, k := range repository.AllStateKeys {
		assert.True(t, seeded[k], k)
	}
}

func TestInit_NeverOverwritesExistingKeys(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.state.UpdateGoal(ctx, domain.GoalDailyProductiveHours, 8)
	require.NoError(t, err)
	_, err = env.state.RemoveCategoryDomain(ctx, domain.CategoryProductive, "github.com")
	require.NoError(t, err)
	env.record(t, "github.com", time.Minute, day1)

	require.NoError(t, env.state.Init(ctx))

	goals, err := env.state.Goals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8.0, goals.DailyProductiveHours)
	cats, err := env.state.Categories(ctx)
	require.NoError(t, err)
	assert.NotContains(t, cats.Productive, "github.com")
	daily, err := env.state.Daily(ctx)
	require.NoError(t, err)
	assert.Len(t, daily.Sessions, 1)
}

func TestInit_MergesOnlyMissingKeys(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	prefs := repository.NewSQLitePreferencesRepo(database)
	custom := domain.Goals{DailyProductiveHours: 3, MaxDistractingHours: 1, FocusSessionMinutes: 50}
	require.NoError(t, prefs.SaveGoals(ctx, custom))
	require.NoError(t, repository.NewSQLiteStateKeyRepo(database).MarkSeeded(ctx, []string{repository.KeyGoals}, day1))

	state := NewStateService(NewStore(testutil.NewTestUoW(database), time.UTC).WithClock(func() time.Time { return day1 }))
	require.NoError(t, state.Init(ctx))

	goals, err := state.Goals(ctx)
	require.NoError(t, err)
	assert.Equal(t, custom, *goals)
	settings, err := state.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), *settings)
}

func TestInit_UsesSeedCategories(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	seed := domain.CategoryConfig{Productive: []string{"go.dev"}, Distracting: []string{"news.ycombinator.com"}, Neutral: []string{}}

	store := NewStore(testutil.NewTestUoW(database), time.UTC).WithSeedCategories(seed)
	state := NewStateService(store)
	require.NoError(t, state.Init(ctx))

	cats, err := state.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed, cats)
}

func TestUpdateGoal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	goals, err := env.state.UpdateGoal(ctx, domain.GoalMaxDistractingHours, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 1.5, goals.MaxDistractingHours)

	_, err = env.state.UpdateGoal(ctx, domain.GoalFocusSessionMinutes, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidGoal)

	_, err = env.state.UpdateGoal(ctx, domain.GoalKey("sleepHours"), 8)
	assert.ErrorIs(t, err, domain.ErrUnknownGoal)

	stored, err := env.state.Goals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1.5, stored.MaxDistractingHours)
	assert.Equal(t, 25.0, stored.FocusSessionMinutes)
}

func TestCategoryEdits_ChangeClassification(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cats, err := env.state.AddCategoryDomain(ctx, domain.CategoryProductive, "  Go.Dev ")
	require.NoError(t, err)
	assert.Contains(t, cats.Productive, "go.dev")

	res := env.record(t, "pkg.go.dev", time.Minute, day1)
	assert.Equal(t, domain.CategoryProductive, res.Session.Category)

	_, err = env.state.RemoveCategoryDomain(ctx, domain.CategoryDistracting, "youtube.com")
	require.NoError(t, err)
	res = env.record(t, "youtube.com", time.Minute, day1.Add(time.Minute))
	assert.Equal(t, domain.CategoryNeutral, res.Session.Category)
}

func TestAddCategoryDomain_DuplicateAndEmpty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	before, err := env.state.Categories(ctx)
	require.NoError(t, err)

	after, err := env.state.AddCategoryDomain(ctx, domain.CategoryProductive, "GitHub.com")
	require.NoError(t, err)
	assert.Equal(t, before.Productive, after.Productive)

	_, err = env.state.AddCategoryDomain(ctx, domain.CategoryProductive, "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyDomain)

	_, err = env.state.AddCategoryDomain(ctx, domain.Category("work"), "x.com")
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestRemoveCategoryDomain_MissingIsNoop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	before, err := env.state.Categories(ctx)
	require.NoError(t, err)
	after, err := env.state.RemoveCategoryDomain(ctx, domain.CategoryProductive, "not-there.example")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSetStreak(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	prog, err := env.state.SetStreak(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, prog.Streak)

	_, err = env.state.SetStreak(ctx, -1)
	assert.ErrorIs(t, err, ErrInvalidStreak)
}

func TestGoalProgress(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.record(t, "github.com", 3*time.Hour, day1)
	env.record(t, "reddit.com", 3*time.Hour, day1.Add(3*time.Hour))

	progress, err := env.state.GoalProgress(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, progress.ProductiveHours, 1e-9)
	assert.InDelta(t, 50.0, progress.DailyGoalPct, 1e-9)
	assert.False(t, progress.DailyGoalMet)
	assert.True(t, progress.DistractingExceeded)
}

func TestResetAllState_RequiresConfirmation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.record(t, "github.com", time.Hour, day1)

	err := env.state.ResetAllState(ctx, false)
	assert.ErrorIs(t, err, ErrResetNotConfirmed)

	daily, err := env.state.Daily(ctx)
	require.NoError(t, err)
	assert.NotZero(t, daily.TotalTimeMs)
}

func TestResetAllState_ClearsAndReseeds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.record(t, "github.com", time.Hour, day1)
	env.record(t, "github.com", time.Hour, day1.AddDate(0, 0, 1))
	*env.clock = day1.AddDate(0, 0, 1)
	_, err := env.state.UpdateGoal(ctx, domain.GoalDailyProductiveHours, 9)
	require.NoError(t, err)
	_, err = env.state.SetStreak(ctx, 6)
	require.NoError(t, err)

	require.NoError(t, env.state.ResetAllState(ctx, true))

	snap, err := env.state.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-12", snap.Daily.Date)
	assert.Zero(t, snap.Daily.TotalTimeMs)
	assert.Empty(t, snap.Weekly)
	assert.Empty(t, snap.Achievements)
	assert.Equal(t, domain.DefaultProgression(), snap.Progression)
	assert.Equal(t, domain.DefaultGoals(), snap.Goals)
	assert.Equal(t, domain.DefaultCategories(), snap.Categories)
}
