package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/productiviquest/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatDuration renders milliseconds as "2h 5m", "12m" or "40s".
func FormatDuration(ms int64) string {
	if ms <= 0 {
		return "0m"
	}
	d := time.Duration(ms) * time.Millisecond
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", int(d/time.Second))
	}
}

// FormatHours renders fractional hours with one decimal, e.g. "1.5h".
func FormatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

// HumanDay renders a YYYY-MM-DD day relative to today.
func HumanDay(day, today string) string {
	t, err := time.Parse(domain.DayLayout, day)
	if err != nil {
		return day
	}
	if day == today {
		return "Today"
	}
	if ref, err := time.Parse(domain.DayLayout, today); err == nil && ref.AddDate(0, 0, -1).Equal(t) {
		return "Yesterday"
	}
	return t.Format("Mon Jan 2")
}
