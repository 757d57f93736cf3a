package scoring

import (
	"testing"

	"github.com/alexanderramin/productiviquest/internal/domain"
	"github.com/stretchr/testify/assert"
)

func statsOf(productive, distracting, neutral int64) domain.DailyStats {
	return domain.DailyStats{
		TotalTimeMs:       productive + distracting + neutral,
		ProductiveTimeMs:  productive,
		DistractingTimeMs: distracting,
		NeutralTimeMs:     neutral,
	}
}

func TestScore_ZeroTotal(t *testing.T) {
	assert.Equal(t, 0, Score(domain.DailyStats{}))
}

func TestScore_AllProductive(t *testing.T) {
	assert.Equal(t, 100, Score(statsOf(600000, 0, 0)))
}

func TestScore_HalfProductiveHalfDistracting(t *testing.T) {
	// base 50, penalty 25
	assert.Equal(t, 25, Score(statsOf(3600000, 3600000, 0)))
}

func TestScore_AllDistractingClampsToZero(t *testing.T) {
	assert.Equal(t, 0, Score(statsOf(0, 3600000, 0)))
}

func TestScore_NeutralDilutes(t *testing.T) {
	assert.Equal(t, 50, Score(statsOf(1000, 0, 1000)))
}

func TestScore_Rounding(t *testing.T) {
	// 2/3 productive = 66.67 -> 67
	assert.Equal(t, 67, Score(statsOf(2000, 0, 1000)))
	// 1/8 productive, 1/8 distracting: 12.5 - 6.25 = 6.25 -> 6
	assert.Equal(t, 6, Score(statsOf(1000, 1000, 6000)))
}

func TestScore_Deterministic(t *testing.T) {
	s := statsOf(1234567, 765432, 111111)
	first := Score(s)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Score(s))
	}
}

func TestScore_AlwaysInRange(t *testing.T) {
	for p := int64(0); p <= 10; p++ {
		for d := int64(0); d <= 10; d++ {
			for n := int64(0); n <= 10; n++ {
				got := Score(statsOf(p*1000, d*1000, n*1000))
				assert.GreaterOrEqual(t, got, 0)
				assert.LessOrEqual(t, got, 100)
			}
		}
	}
}

func TestProgress(t *testing.T) {
	goals := domain.DefaultGoals()
	p := Progress(statsOf(3*3600000, 3*3600000, 0), goals)

	assert.InDelta(t, 3.0, p.ProductiveHours, 1e-9)
	assert.InDelta(t, 50.0, p.DailyGoalPct, 1e-9)
	assert.False(t, p.DailyGoalMet)
	assert.Equal(t, 100.0, p.DistractingLimitPct)
	assert.True(t, p.DistractingExceeded)
}
