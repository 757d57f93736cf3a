package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/productiviquest/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's score, goals and top sites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadDailyView(cmd.Context(), app)
			if err != nil {
				return err
			}
			view.Tracking = app.trackingLine(cmd.Context())
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDaily(*view))
			return nil
		},
	}
}

// loadDailyView gathers today's data from the state service.
func loadDailyView(ctx context.Context, app *App) (*formatter.DailyView, error) {
	stats, err := app.State.Daily(ctx)
	if err != nil {
		return nil, err
	}
	goals, err := app.State.Goals(ctx)
	if err != nil {
		return nil, err
	}
	progress, err := app.State.GoalProgress(ctx)
	if err != nil {
		return nil, err
	}
	prog, err := app.State.Progression(ctx)
	if err != nil {
		return nil, err
	}
	return &formatter.DailyView{
		Stats:       *stats,
		Goals:       *goals,
		Progress:    *progress,
		Progression: *prog,
	}, nil
}

func newWeeklyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "weekly",
		Short: "Show the archived days of the last week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			weekly, err := app.State.Weekly(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeekly(weekly, app.today()))
			return nil
		},
	}
}

func newAchievementsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "List unlocked and locked achievements with level progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := app.State.Achievements(cmd.Context())
			if err != nil {
				return err
			}
			prog, err := app.State.Progression(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAchievements(ids, *prog))
			return nil
		},
	}
}
