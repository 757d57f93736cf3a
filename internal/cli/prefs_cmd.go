package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/productiviquest/internal/cli/formatter"
	"github.com/alexanderramin/productiviquest/internal/domain"
	"github.com/spf13/cobra"
)

func newGoalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Show or change daily goals",
	}
	cmd.AddCommand(newGoalListCmd(app), newGoalSetCmd(app))
	return cmd
}

func newGoalListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show current goals",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			goals, err := app.State.Goals(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGoals(*goals))
			return nil
		},
	}
}

func newGoalSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set one goal (dailyProductiveHours, maxDistractingHours, focusSessionMinutes)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := domain.ParseGoalKey(args[0])
			if err != nil {
				return err
			}
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid goal value %q: %w", args[1], err)
			}
			goals, err := app.State.UpdateGoal(cmd.Context(), key, value)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s set to %v\n", key, value)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGoals(*goals))
			return nil
		},
	}
}

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage the domain lists used for classification",
	}
	cmd.AddCommand(
		newCategoryListCmd(app),
		newCategoryAddCmd(app),
		newCategoryRemoveCmd(app),
	)
	return cmd
}

func newCategoryListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show every category and its domains",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := app.State.Categories(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCategories(cats))
			return nil
		},
	}
}

func newCategoryAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add CATEGORY DOMAIN",
		Short: "Add a domain to a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := domain.ParseCategory(args[0])
			if err != nil {
				return err
			}
			if _, err := app.State.AddCategoryDomain(cmd.Context(), cat, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", args[1], formatter.CategoryIndicator(cat))
			return nil
		},
	}
}

func newCategoryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove CATEGORY DOMAIN",
		Aliases: []string{"rm"},
		Short:   "Remove a domain from a category",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := domain.ParseCategory(args[0])
			if err != nil {
				return err
			}
			if _, err := app.State.RemoveCategoryDomain(cmd.Context(), cat, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", args[1], formatter.CategoryIndicator(cat))
			return nil
		},
	}
}

func newStreakCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Manage the stored productivity streak",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set N",
		Short: "Overwrite the streak counter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid streak %q: %w", args[0], err)
			}
			prog, err := app.State.SetStreak(cmd.Context(), n)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Streak set to %d\n", prog.Streak)
			return nil
		},
	})
	return cmd
}

func newSettingsCmd(app *App) *cobra.Command {
	var theme string
	var notifications, sound bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			current, err := app.State.Settings(ctx)
			if err != nil {
				return err
			}

			next := *current
			changed := false
			if cmd.Flags().Changed("theme") {
				next.Theme, changed = theme, true
			}
			if cmd.Flags().Changed("notifications") {
				next.Notifications, changed = notifications, true
			}
			if cmd.Flags().Changed("sound") {
				next.SoundEnabled, changed = sound, true
			}
			if changed {
				if current, err = app.State.UpdateSettings(ctx, next); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n", formatter.Bold("theme        "), current.Theme)
			fmt.Fprintf(out, "%s  %s\n", formatter.Bold("notifications"), onOff(current.Notifications))
			fmt.Fprintf(out, "%s  %s\n", formatter.Bold("sound        "), onOff(current.SoundEnabled))
			return nil
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "Popup theme (light or dark)")
	cmd.Flags().BoolVar(&notifications, "notifications", true, "Announce unlocked achievements")
	cmd.Flags().BoolVar(&sound, "sound", true, "Play a sound with notifications")

	return cmd
}

func onOff(b bool) string {
	if b {
		return formatter.StyleGreen.Render("on")
	}
	return formatter.StyleDim.Render("off")
}
