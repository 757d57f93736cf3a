package scoring

import (
	"math"

	"github.com/alexanderramin/productiviquest/internal/domain"
)

// distractionPenaltyWeight scales the distracting share before it is
// subtracted from the productive share.
const distractionPenaltyWeight = 0.5

const msPerHour = float64(60 * 60 * 1000)

// Score derives the 0-100 productivity score from a day's category totals.
// The arithmetic order is fixed so results are reproducible bit-for-bit.
func Score(stats domain.DailyStats) int {
	if stats.TotalTimeMs == 0 {
		return 0
	}
	total := float64(stats.TotalTimeMs)
	productiveRatio := float64(stats.ProductiveTimeMs) / total
	distractingPenalty := (float64(stats.DistractingTimeMs) / total) * distractionPenaltyWeight

	base := productiveRatio * 100
	penalized := math.Max(0, base-(distractingPenalty*100))
	return int(math.Round(penalized))
}

// GoalProgress compares a day's totals against the user's goals.
type GoalProgress struct {
	ProductiveHours  float64
	DistractingHours float64
	// DailyGoalPct and DistractingLimitPct are capped at 100.
	DailyGoalPct        float64
	DistractingLimitPct float64
	DailyGoalMet        bool
	DistractingExceeded bool
}

// Progress computes goal progress for the dashboard-style summaries.
func Progress(stats domain.DailyStats, goals domain.Goals) GoalProgress {
	p := GoalProgress{
		ProductiveHours:  HoursOf(stats.ProductiveTimeMs),
		DistractingHours: HoursOf(stats.DistractingTimeMs),
	}
	if goals.DailyProductiveHours > 0 {
		p.DailyGoalPct = math.Min(p.ProductiveHours/goals.DailyProductiveHours*100, 100)
		p.DailyGoalMet = p.ProductiveHours >= goals.DailyProductiveHours
	}
	if goals.MaxDistractingHours > 0 {
		p.DistractingLimitPct = math.Min(p.DistractingHours/goals.MaxDistractingHours*100, 100)
		p.DistractingExceeded = p.DistractingHours > goals.MaxDistractingHours
	}
	return p
}

// HoursOf converts milliseconds to fractional hours.
func HoursOf(ms int64) float64 {
	return float64(ms) / msPerHour
}
