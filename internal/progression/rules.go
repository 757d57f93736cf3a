package progression

import (
	"time"

	"github.com/alexanderramin/productiviquest/internal/domain"
	"github.com/alexanderramin/productiviquest/internal/scoring"
)

const (
	highPerformerScore      = 80
	productivityMasterScore = 90
	focusedWorkerMs         = 4 * 60 * 60 * 1000
	distractionBudgetMs     = 60 * 60 * 1000
	earlyBirdHour           = 8
	nightOwlHour            = 22
	weekWarriorDays         = 7
)

// Input is everything a rule may inspect. Rules only ever look at the
// current day plus the small amount of stored context below.
type Input struct {
	Stats    domain.DailyStats
	Goals    domain.Goals
	Archived domain.WeeklyStats
	Location *time.Location
}

// Rule unlocks achievement ID once Met returns true.
type Rule struct {
	ID  string
	Met func(in Input, prog domain.Progression) bool
}

// DefaultRules is the core predicate table, in evaluation order.
var DefaultRules = []Rule{
	{domain.AchievementHighPerformer, func(in Input, _ domain.Progression) bool {
		return in.Stats.Score >= highPerformerScore
	}},
	{domain.AchievementFocusedWorker, func(in Input, _ domain.Progression) bool {
		return in.Stats.ProductiveTimeMs >= focusedWorkerMs
	}},
	{domain.AchievementProductivityMaster, func(in Input, _ domain.Progression) bool {
		return in.Stats.Score >= productivityMasterScore
	}},
}

// ExtendedRules adds the streak, time-of-day, focus and level achievements
// on top of DefaultRules.
var ExtendedRules = append(append([]Rule{}, DefaultRules...),
	Rule{domain.AchievementStreakStarter, func(_ Input, p domain.Progression) bool {
		return p.Streak >= 3
	}},
	Rule{domain.AchievementWeekWarrior, weekWarrior},
	Rule{domain.AchievementConsistencyKing, func(_ Input, p domain.Progression) bool {
		return p.Streak >= 14
	}},
	Rule{domain.AchievementFocusMaster, focusMaster},
	Rule{domain.AchievementDistractionDestroyer, func(in Input, _ domain.Progression) bool {
		return scoring.Progress(in.Stats, in.Goals).DailyGoalMet && in.Stats.DistractingTimeMs < distractionBudgetMs
	}},
	Rule{domain.AchievementEarlyBird, func(in Input, _ domain.Progression) bool {
		return anyProductive(in, func(s domain.Session, loc *time.Location) bool {
			return s.Timestamp.Add(-s.Duration()).In(loc).Hour() < earlyBirdHour
		})
	}},
	Rule{domain.AchievementNightOwl, func(in Input, _ domain.Progression) bool {
		return anyProductive(in, func(s domain.Session, loc *time.Location) bool {
			return s.Timestamp.In(loc).Hour() >= nightOwlHour
		})
	}},
	Rule{domain.AchievementLevelUp, func(_ Input, p domain.Progression) bool {
		return p.Level >= 5
	}},
	Rule{domain.AchievementProductivityGuru, func(_ Input, p domain.Progression) bool {
		return p.Level >= 10
	}},
)

func focusMaster(in Input, _ domain.Progression) bool {
	minMs := int64(in.Goals.FocusSessionMinutes * 60 * 1000)
	if minMs <= 0 {
		return false
	}
	return anyProductive(in, func(s domain.Session, _ *time.Location) bool {
		return s.DurationMs >= minMs
	})
}

func weekWarrior(in Input, _ domain.Progression) bool {
	if len(in.Archived) < weekWarriorDays {
		return false
	}
	for _, d := range in.Archived[len(in.Archived)-weekWarriorDays:] {
		if d.Score < highPerformerScore {
			return false
		}
	}
	return true
}

func anyProductive(in Input, pred func(domain.Session, *time.Location) bool) bool {
	loc := in.Location
	if loc == nil {
		loc = time.Local
	}
	for _, s := range in.Stats.Sessions {
		if s.Category == domain.CategoryProductive && pred(s, loc) {
			return true
		}
	}
	return false
}
