// Package progression evaluates achievement rules and derives levels from
// experience.
package progression

import (
	"slices"

	"github.com/alexanderramin/productiviquest/internal/domain"
)

type Result struct {
	// NewAchievements holds ids unlocked by this evaluation, in rule order.
	NewAchievements []string
	// Unlocked is the full unlock list after this evaluation.
	Unlocked    []string
	Progression domain.Progression
}

// Changed reports whether anything new was granted.
func (r Result) Changed() bool {
	return len(r.NewAchievements) > 0
}

type Evaluator struct {
	rules []Rule
}

// NewEvaluator returns an evaluator over rules. A nil table means DefaultRules.
func NewEvaluator(rules []Rule) *Evaluator {
	if rules == nil {
		rules = DefaultRules
	}
	return &Evaluator{rules: rules}
}

// Evaluate checks every rule not yet in unlocked. Each newly satisfied rule
// is appended to the unlock list and grants domain.ExperiencePerAchievement.
// Unlocked ids are never removed, and the returned level always equals
// domain.LevelFor(experience).
func (e *Evaluator) Evaluate(in Input, unlocked []string, prog domain.Progression) Result {
	out := Result{
		Unlocked:    slices.Clone(unlocked),
		Progression: prog,
	}
	for _, r := range e.rules {
		if slices.Contains(out.Unlocked, r.ID) {
			continue
		}
		// Later rules see experience granted by earlier ones.
		if !r.Met(in, out.Progression) {
			continue
		}
		out.Unlocked = append(out.Unlocked, r.ID)
		out.NewAchievements = append(out.NewAchievements, r.ID)
		out.Progression.Grant(domain.ExperiencePerAchievement)
	}
	out.Progression.Level = domain.LevelFor(out.Progression.Experience)
	return out
}

// Evaluate runs the default rule table.
func Evaluate(in Input, unlocked []string, prog domain.Progression) Result {
	return NewEvaluator(nil).Evaluate(in, unlocked, prog)
}
