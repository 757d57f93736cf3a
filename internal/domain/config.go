package domain

import (
	"fmt"
	"slices"
	"strings"
)

type Goals struct {
	DailyProductiveHours float64
	MaxDistractingHours  float64
	FocusSessionMinutes  float64
}

func DefaultGoals() Goals {
	return Goals{
		DailyProductiveHours: 6,
		MaxDistractingHours:  2,
		FocusSessionMinutes:  25,
	}
}

// Set updates one goal. Values must be positive.
func (g *Goals) Set(key GoalKey, value float64) error {
	if !ValidGoalKeys[key] {
		return fmt.Errorf("%w: %q", ErrUnknownGoal, key)
	}
	if value <= 0 {
		return fmt.Errorf("%w: %s=%v", ErrInvalidGoal, key, value)
	}
	switch key {
	case GoalDailyProductiveHours:
		g.DailyProductiveHours = value
	case GoalMaxDistractingHours:
		g.MaxDistractingHours = value
	case GoalFocusSessionMinutes:
		g.FocusSessionMinutes = value
	}
	return nil
}

// CategoryConfig holds the domain substrings used for classification.
// Neutral entries are informational; unmatched domains are neutral anyway.
type CategoryConfig struct {
	Productive  []string
	Distracting []string
	Neutral     []string
}

func DefaultCategories() CategoryConfig {
	return CategoryConfig{
		Productive: []string{
			"github.com", "stackoverflow.com", "docs.google.com",
			"notion.so", "coursera.org", "udemy.com", "linkedin.com/learning",
		},
		Distracting: []string{
			"facebook.com", "twitter.com", "instagram.com", "youtube.com",
			"netflix.com", "reddit.com", "tiktok.com", "twitch.tv",
		},
		Neutral: []string{
			"google.com", "gmail.com", "calendar.google.com", "drive.google.com",
		},
	}
}

// List returns the entries configured for a category.
func (c CategoryConfig) List(cat Category) []string {
	switch cat {
	case CategoryProductive:
		return c.Productive
	case CategoryDistracting:
		return c.Distracting
	default:
		return c.Neutral
	}
}

func (c *CategoryConfig) set(cat Category, entries []string) {
	switch cat {
	case CategoryProductive:
		c.Productive = entries
	case CategoryDistracting:
		c.Distracting = entries
	default:
		c.Neutral = entries
	}
}

// NormalizeEntry trims and lower-cases a user-supplied domain entry.
func NormalizeEntry(entry string) string {
	return strings.ToLower(strings.TrimSpace(entry))
}

// Add appends entry to the category list. It reports false when the entry
// was already present.
func (c *CategoryConfig) Add(cat Category, entry string) (bool, error) {
	entry = NormalizeEntry(entry)
	if entry == "" {
		return false, ErrEmptyDomain
	}
	list := c.List(cat)
	if slices.Contains(list, entry) {
		return false, nil
	}
	c.set(cat, append(slices.Clone(list), entry))
	return true, nil
}

// Remove deletes entry from the category list. Missing entries are a no-op.
func (c *CategoryConfig) Remove(cat Category, entry string) bool {
	entry = NormalizeEntry(entry)
	list := c.List(cat)
	idx := slices.Index(list, entry)
	if idx < 0 {
		return false
	}
	c.set(cat, slices.Delete(slices.Clone(list), idx, idx+1))
	return true
}

// Settings are presentation preferences passed through unchanged.
type Settings struct {
	Theme         string
	Notifications bool
	SoundEnabled  bool
}

func DefaultSettings() Settings {
	return Settings{Theme: "light", Notifications: true, SoundEnabled: true}
}
