package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all stats, achievements and preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmed := yes
			if !confirmed {
				if !app.interactive() {
					return errors.New("reset needs --yes when not running in a terminal")
				}
				ok, err := app.confirm("Reset all productivity data?")
				if err != nil {
					return err
				}
				confirmed = ok
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled.")
				return nil
			}

			if err := app.State.ResetAllState(cmd.Context(), true); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All data reset to defaults.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
