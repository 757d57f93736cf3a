package domain

import "fmt"

type Category string

const (
	CategoryProductive  Category = "productive"
	CategoryDistracting Category = "distracting"
	CategoryNeutral     Category = "neutral"
)

// Categories lists every category in classification check order.
var Categories = []Category{CategoryProductive, CategoryDistracting, CategoryNeutral}

// ParseCategory converts a user-supplied string into a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryProductive, CategoryDistracting, CategoryNeutral:
		return Category(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

type GoalKey string

const (
	GoalDailyProductiveHours GoalKey = "dailyProductiveHours"
	GoalMaxDistractingHours  GoalKey = "maxDistractingHours"
	GoalFocusSessionMinutes  GoalKey = "focusSessionMinutes"
)

// ValidGoalKeys is the canonical set of accepted goal keys.
var ValidGoalKeys = map[GoalKey]bool{
	GoalDailyProductiveHours: true,
	GoalMaxDistractingHours:  true,
	GoalFocusSessionMinutes:  true,
}

// ParseGoalKey converts a user-supplied string into a GoalKey.
func ParseGoalKey(s string) (GoalKey, error) {
	k := GoalKey(s)
	if !ValidGoalKeys[k] {
		return "", fmt.Errorf("%w: %q", ErrUnknownGoal, s)
	}
	return k, nil
}
