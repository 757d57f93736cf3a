package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/productiviquest/internal/domain"
)

const weeklyBarWidth = 10

// FormatWeekly renders archived days, most recent first.
func FormatWeekly(weekly domain.WeeklyStats, today string) string {
	if len(weekly) == 0 {
		return RenderBox("History", Dim("No archived days yet."))
	}

	rows := make([][]string, 0, len(weekly))
	var scoreSum int
	var productive int64
	for i := len(weekly) - 1; i >= 0; i-- {
		d := weekly[i]
		scoreSum += d.Score
		productive += d.ProductiveTimeMs
		rows = append(rows, []string{
			HumanDay(d.Date, today),
			ScoreStyle(d.Score).Render(fmt.Sprintf("%3d", d.Score)),
			RenderCompactBar(float64(d.Score)/100, weeklyBarWidth, false),
			FormatDuration(d.ProductiveTimeMs),
			FormatDuration(d.DistractingTimeMs),
			FormatDuration(d.TotalTimeMs),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable([]string{"DAY", "SCORE", "", "PRODUCTIVE", "DISTRACTING", "TOTAL"}, rows))
	b.WriteString("\n")
	avg := scoreSum / len(weekly)
	b.WriteString(fmt.Sprintf("%d days, average score %s, %s productive\n",
		len(weekly),
		ScoreStyle(avg).Render(fmt.Sprintf("%d", avg)),
		FormatDuration(productive),
	))
	return RenderBox("History", b.String())
}
