package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoals_Set(t *testing.T) {
	g := DefaultGoals()
	require.NoError(t, g.Set(GoalDailyProductiveHours, 8))
	assert.Equal(t, 8.0, g.DailyProductiveHours)

	err := g.Set(GoalMaxDistractingHours, 0)
	assert.ErrorIs(t, err, ErrInvalidGoal)
	assert.Equal(t, 2.0, g.MaxDistractingHours)

	err = g.Set(GoalKey("bogus"), 3)
	assert.ErrorIs(t, err, ErrUnknownGoal)
}

func TestParseGoalKey(t *testing.T) {
	k, err := ParseGoalKey("focusSessionMinutes")
	require.NoError(t, err)
	assert.Equal(t, GoalFocusSessionMinutes, k)

	_, err = ParseGoalKey("nope")
	assert.ErrorIs(t, err, ErrUnknownGoal)
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("distracting")
	require.NoError(t, err)
	assert.Equal(t, CategoryDistracting, c)

	_, err = ParseCategory("fun")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestCategoryConfig_AddNormalizesAndDedupes(t *testing.T) {
	cfg := DefaultCategories()
	before := len(cfg.Productive)

	added, err := cfg.Add(CategoryProductive, "  Go.dev ")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Contains(t, cfg.Productive, "go.dev")

	added, err = cfg.Add(CategoryProductive, "GO.DEV")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Len(t, cfg.Productive, before+1)

	_, err = cfg.Add(CategoryDistracting, "   ")
	assert.ErrorIs(t, err, ErrEmptyDomain)
}

func TestCategoryConfig_Remove(t *testing.T) {
	cfg := DefaultCategories()
	shared := cfg.Distracting

	assert.True(t, cfg.Remove(CategoryDistracting, "reddit.com"))
	assert.NotContains(t, cfg.Distracting, "reddit.com")
	assert.Contains(t, shared, "reddit.com", "removal must not mutate the previous slice")

	assert.False(t, cfg.Remove(CategoryDistracting, "reddit.com"))
}
