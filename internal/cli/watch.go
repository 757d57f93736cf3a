package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/productiviquest/internal/cli/formatter"
	"github.com/alexanderramin/productiviquest/internal/scoring"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const (
	watchRefresh  = 30 * time.Second
	watchBarWidth = 30
	watchTopSites = 5
)

var watchKeys = struct {
	Quit    key.Binding
	Refresh key.Binding
}{
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
}

// watchLoadedMsg carries a fresh daily view.
type watchLoadedMsg struct {
	view *formatter.DailyView
	err  error
}

// watchTickMsg triggers the periodic refresh.
type watchTickMsg time.Time

// watchModel is a live view of today's progress, refreshed on a timer.
type watchModel struct {
	app      *App
	interval time.Duration

	view     *formatter.DailyView
	err      error
	loadedAt time.Time

	productive  progress.Model
	distracting progress.Model
}

func newWatchModel(app *App, interval time.Duration) *watchModel {
	return &watchModel{
		app:      app,
		interval: interval,
		productive: progress.New(
			progress.WithSolidFill(string(formatter.ColorGreen)),
			progress.WithWidth(watchBarWidth),
			progress.WithoutPercentage(),
		),
		distracting: progress.New(
			progress.WithSolidFill(string(formatter.ColorRed)),
			progress.WithWidth(watchBarWidth),
			progress.WithoutPercentage(),
		),
	}
}

func (m *watchModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.tick())
}

func (m *watchModel) load() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		ctx := context.Background()
		view, err := loadDailyView(ctx, app)
		if err != nil {
			return watchLoadedMsg{err: err}
		}
		view.Tracking = app.trackingLine(ctx)
		return watchLoadedMsg{view: view}
	}
}

func (m *watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return watchTickMsg(t) })
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, watchKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, watchKeys.Refresh):
			return m, m.load()
		}
	case tea.WindowSizeMsg:
		w := msg.Width - 30
		if w > watchBarWidth {
			w = watchBarWidth
		}
		if w < 10 {
			w = 10
		}
		m.productive.Width = w
		m.distracting.Width = w
	case watchTickMsg:
		return m, tea.Batch(m.load(), m.tick())
	case watchLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.view = msg.view
			m.loadedAt = m.app.now()
		}
	}
	return m, nil
}

func (m *watchModel) View() string {
	var b strings.Builder

	b.WriteString(formatter.Header("Productiviquest") + "\n\n")
	switch {
	case m.view == nil && m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	case m.view == nil:
		b.WriteString(formatter.Dim("Loading...") + "\n")
	default:
		m.renderView(&b)
		if m.err != nil {
			b.WriteString(formatter.StyleRed.Render("Refresh failed: "+m.err.Error()) + "\n")
		}
	}

	b.WriteString("\n" + formatter.Dim(fmt.Sprintf("refreshes every %s · r refresh · q quit", m.interval)) + "\n")
	return b.String()
}

func (m *watchModel) renderView(b *strings.Builder) {
	v := m.view
	score := formatter.ScoreStyle(v.Stats.Score).Bold(true).Render(fmt.Sprintf("%d", v.Stats.Score))
	fmt.Fprintf(b, "%s %s/100   %s %s\n",
		formatter.Bold("Score"), score,
		formatter.Bold("Level"), formatter.StylePurple.Render(fmt.Sprintf("%d", v.Progression.Level)),
	)
	if v.Tracking != "" {
		b.WriteString(formatter.StyleBlue.Render(v.Tracking) + "\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(b, "Productive   %s  %s / %s\n",
		m.productive.ViewAs(v.Progress.DailyGoalPct/100),
		formatter.FormatHours(v.Progress.ProductiveHours),
		formatter.FormatHours(v.Goals.DailyProductiveHours),
	)
	fmt.Fprintf(b, "Distracting  %s  %s / %s\n",
		m.distracting.ViewAs(v.Progress.DistractingLimitPct/100),
		formatter.FormatHours(v.Progress.DistractingHours),
		formatter.FormatHours(v.Goals.MaxDistractingHours),
	)

	top := scoring.TopDomains(v.Stats, watchTopSites)
	if len(top) > 0 {
		b.WriteString("\n")
		for _, d := range top {
			fmt.Fprintf(b, "  %-28s %s\n", d.Domain, formatter.CategoryColor(d.Category).Render(formatter.FormatDuration(d.TimeMs)))
		}
	}
	if !m.loadedAt.IsZero() {
		b.WriteString("\n" + formatter.Dim("updated "+m.loadedAt.Format("15:04:05")) + "\n")
	}
}

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live view of today's progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(newWatchModel(app, watchRefresh),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			_, err := p.Run()
			if err != nil && cmd.Context().Err() != nil {
				return nil
			}
			return err
		},
	}
}
