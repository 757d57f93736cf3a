package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/productiviquest/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// CategoryColor returns the style used for a category.
func CategoryColor(c domain.Category) lipgloss.Style {
	switch c {
	case domain.CategoryProductive:
		return StyleGreen
	case domain.CategoryDistracting:
		return StyleRed
	default:
		return StyleBlue
	}
}

// CategoryIndicator returns a colored label such as "● productive".
func CategoryIndicator(c domain.Category) string {
	return CategoryColor(c).Render("● " + string(c))
}

// ScoreStyle colors a productivity score: green from 80, yellow from 50.
func ScoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return StyleGreen
	case score >= 50:
		return StyleYellow
	default:
		return StyleRed
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
