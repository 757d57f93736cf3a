package cli

import (
	"github.com/alexanderramin/productiviquest/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// huhTheme matches the formatter palette.
func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorRed).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description("This cannot be undone.").
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

func promptConfirm(title string) (bool, error) {
	var ok bool
	if err := confirmForm(title, &ok).Run(); err != nil {
		return false, err
	}
	return ok, nil
}
