package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/productiviquest/internal/domain"
)

// FormatCategories renders the classification lists.
func FormatCategories(cfg domain.CategoryConfig) string {
	var b strings.Builder
	for i, cat := range domain.Categories {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(CategoryColor(cat).Bold(true).Render(strings.ToUpper(string(cat))) + "\n")
		entries := cfg.List(cat)
		if len(entries) == 0 {
			b.WriteString(Dim("  (none)") + "\n")
			continue
		}
		for _, e := range entries {
			b.WriteString("  " + e + "\n")
		}
	}
	return RenderBox("Categories", b.String())
}

// FormatGoals renders the three goal values.
func FormatGoals(g domain.Goals) string {
	rows := [][]string{
		{string(domain.GoalDailyProductiveHours), FormatHours(g.DailyProductiveHours)},
		{string(domain.GoalMaxDistractingHours), FormatHours(g.MaxDistractingHours)},
		{string(domain.GoalFocusSessionMinutes), fmt.Sprintf("%gm", g.FocusSessionMinutes)},
	}
	return RenderBox("Goals", RenderTable([]string{"GOAL", "VALUE"}, rows))
}
