package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/productiviquest/internal/service"
	"github.com/spf13/cobra"
)

// App holds the state service and process hooks used by CLI commands.
type App struct {
	State    service.StateService
	Location *time.Location

	// Serve runs the tracking daemon until ctx is cancelled.
	Serve func(ctx context.Context) error

	// DaemonAddr is where `status` asks a running daemon for live tracking.
	// Empty disables the lookup.
	DaemonAddr string

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool

	// Confirm asks a yes/no question. Defaults to a huh prompt.
	Confirm func(title string) (bool, error)

	// Now is the wall clock; overridable in tests.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) today() string {
	loc := a.Location
	if loc == nil {
		loc = time.Local
	}
	return a.now().In(loc).Format("2006-01-02")
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) confirm(title string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title)
	}
	return promptConfirm(title)
}

// NewRootCmd creates the top-level "productiviquest" command and registers
// all subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "productiviquest",
		Short:         "Browser productivity tracker with goals and achievements",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newStatusCmd(app),
		newWeeklyCmd(app),
		newAchievementsCmd(app),
		newGoalCmd(app),
		newCategoryCmd(app),
		newStreakCmd(app),
		newSettingsCmd(app),
		newResetCmd(app),
		newWatchCmd(app),
	)

	return root
}
