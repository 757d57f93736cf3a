package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/productiviquest/internal/domain"
	"github.com/alexanderramin/productiviquest/internal/scoring"
)

const (
	dailyBarWidth   = 20
	topDomainsLimit = 5
)

// DailyView is everything the status screen shows.
type DailyView struct {
	Stats       domain.DailyStats
	Goals       domain.Goals
	Progress    scoring.GoalProgress
	Progression domain.Progression
	// Tracking is an optional live line from the daemon, e.g.
	// "tracking github.com for 12m".
	Tracking string
}

// FormatDaily renders today's score, category totals, goal progress and
// top domains.
func FormatDaily(v DailyView) string {
	var b strings.Builder

	score := ScoreStyle(v.Stats.Score).Bold(true).Render(fmt.Sprintf("%d", v.Stats.Score))
	b.WriteString(fmt.Sprintf("%s  %s/100   %s\n", Bold("Score"), score, Dim(v.Stats.Date)))
	b.WriteString(fmt.Sprintf("%s  %s   %s\n",
		Bold("Level"),
		StylePurple.Render(fmt.Sprintf("%d", v.Progression.Level)),
		Dim(fmt.Sprintf("%d XP, streak %d", v.Progression.Experience, v.Progression.Streak)),
	))
	if v.Tracking != "" {
		b.WriteString(StyleBlue.Render(v.Tracking) + "\n")
	}
	b.WriteString("\n")

	rows := [][]string{
		{CategoryIndicator(domain.CategoryProductive), FormatDuration(v.Stats.ProductiveTimeMs)},
		{CategoryIndicator(domain.CategoryDistracting), FormatDuration(v.Stats.DistractingTimeMs)},
		{CategoryIndicator(domain.CategoryNeutral), FormatDuration(v.Stats.NeutralTimeMs)},
		{Bold("total"), FormatDuration(v.Stats.TotalTimeMs)},
	}
	b.WriteString(RenderTable([]string{"CATEGORY", "TIME"}, rows))
	b.WriteString("\n")

	b.WriteString(Header("Goals") + "\n")
	b.WriteString(fmt.Sprintf("Productive   %s  %s / %s\n",
		RenderProgress(v.Progress.DailyGoalPct/100, dailyBarWidth),
		FormatHours(v.Progress.ProductiveHours),
		FormatHours(v.Goals.DailyProductiveHours),
	))
	b.WriteString(fmt.Sprintf("Distracting  %s  %s / %s\n",
		RenderLimit(v.Progress.DistractingLimitPct/100, dailyBarWidth),
		FormatHours(v.Progress.DistractingHours),
		FormatHours(v.Goals.MaxDistractingHours),
	))
	if v.Progress.DailyGoalMet {
		b.WriteString(StyleGreen.Render("Daily goal reached") + "\n")
	}
	if v.Progress.DistractingExceeded {
		b.WriteString(StyleRed.Render("Distraction limit exceeded") + "\n")
	}

	top := scoring.TopDomains(v.Stats, topDomainsLimit)
	if len(top) > 0 {
		b.WriteString("\n" + Header("Top sites") + "\n")
		rows := make([][]string, 0, len(top))
		for _, d := range top {
			rows = append(rows, []string{d.Domain, CategoryIndicator(d.Category), FormatDuration(d.TimeMs)})
		}
		b.WriteString(RenderTable([]string{"DOMAIN", "CATEGORY", "TIME"}, rows))
	}

	return RenderBox("Today", b.String())
}
