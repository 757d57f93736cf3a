package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/productiviquest/internal/domain"
)

const levelBarWidth = 20

// FormatAchievements renders the catalogue with unlocked entries marked,
// followed by level progress.
func FormatAchievements(unlocked []string, prog domain.Progression) string {
	have := make(map[string]bool, len(unlocked))
	for _, id := range unlocked {
		have[id] = true
	}

	rows := make([][]string, 0, len(domain.AchievementCatalog))
	for _, a := range domain.AchievementCatalog {
		mark := Dim("○")
		name := Dim(a.Name)
		if have[a.ID] {
			mark = StyleGreen.Render("✔")
			name = Bold(a.Name)
		}
		rows = append(rows, []string{mark, name, Dim(a.Description)})
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d of %d unlocked\n\n", len(unlocked), len(domain.AchievementCatalog)))
	b.WriteString(RenderTable([]string{"", "ACHIEVEMENT", "DESCRIPTION"}, rows))
	b.WriteString("\n")

	current, needed := prog.LevelProgress()
	b.WriteString(fmt.Sprintf("Level %s  %s  %s\n",
		StylePurple.Render(fmt.Sprintf("%d", prog.Level)),
		RenderProgress(float64(current)/float64(needed), levelBarWidth),
		Dim(fmt.Sprintf("%d/%d XP", current, needed)),
	))
	return RenderBox("Achievements", b.String())
}
