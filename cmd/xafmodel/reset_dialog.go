// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xafmodel/xafmodel/internal/config"
	"github.com/xafmodel/xafmodel/internal/logsink"
	"github.com/xafmodel/xafmodel/internal/state"
)

func newResetDialogCommand(app *App, root *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-dialog",
		Short: "Show the Model Editor start dialog again",
		Long: `Clear the "Don't show again" choice made in the start dialog, so the
dialog is shown before the next launch.`,
		Args: cobra.NoArgs,
		RunE: app.withSession(root, func(cmd *cobra.Command, args []string, s *session) error {
			path, err := config.StatePath(s.loadOpts)
			if err != nil {
				return fmt.Errorf("locate state file: %w", err)
			}
			store := state.NewStore(path.String())
			if err := store.SetBool(state.SuppressStartDialogKey, false); err != nil {
				return fmt.Errorf("reset start dialog: %w", err)
			}
			logsink.Printf(s.log, "Cleared %s in %s", state.SuppressStartDialogKey, store.Path())
			fmt.Fprintf(app.stdout, "%s The Model Editor start dialog will be shown again next time.\n", SuccessStyle.Render("✓"))
			return nil
		}),
	}
}
