// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xafmodel/xafmodel/internal/config"
)

// newConfigCommand creates the `xafmodel config` command tree.
func newConfigCommand(app *App, root *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage xafmodel configuration",
		Long: `Manage xafmodel configuration.

Configuration is stored in:
  - Linux: ~/.config/xafmodel/config.cue
  - macOS: ~/Library/Application Support/xafmodel/config.cue
  - Windows: %APPDATA%\xafmodel\config.cue

Environment variables XAFMODEL_<SECTION>_<KEY> (for example
XAFMODEL_BUILD_ENABLED=false) override values from the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: app.withSession(root, func(cmd *cobra.Command, args []string, s *session) error {
			return showConfig(app, s)
		}),
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return app.handleError(cmd, initConfig(app, root, force), nil)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			path, err := config.FilePath(app.loadOptions(root))
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	return cfgCmd
}

func showConfig(app *App, s *session) error {
	source := SubtitleStyle.Render("(using defaults)")
	if path, err := config.FilePath(s.loadOpts); err == nil {
		if _, statErr := os.Stat(path.String()); statErr == nil {
			source = path.String()
		}
	}

	fmt.Fprintf(app.stderr, "%s %s\n\n", CmdStyle.Render("Config file:"), source)
	fmt.Fprint(app.stdout, config.GenerateCUE(s.cfg))
	return nil
}

func initConfig(app *App, root *rootFlagValues, force bool) error {
	path, err := config.CreateDefaultConfig(app.loadOptions(root), force)
	if errors.Is(err, config.ErrConfigExists) {
		fmt.Fprintf(app.stderr, "%s Configuration already exists at %s (use --force to overwrite)\n", WarningStyle.Render("!"), path)
		return &ExitError{Code: 1, Err: err}
	}
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}
