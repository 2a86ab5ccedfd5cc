// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the xafmodel command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "xafmodel",
		Short: "Open XAF model files in the DevExpress Model Editor",
		Long: TitleStyle.Render("xafmodel") + SubtitleStyle.Render(" - Open XAF model files in the DevExpress Model Editor") + `

xafmodel finds the project a model file (*.xafml) belongs to, reads the
DevExpress version it references, builds the solution and starts the
matching Model Editor with the right arguments.

` + SubtitleStyle.Render("Examples:") + `
  xafmodel open Module/Model.DesignedDiffs.xafml   Build and open in the Model Editor
  xafmodel resolve Module/Model.xafml              Show what open would do
  xafmodel tree                                    List model files and their variants
  xafmodel config init                             Create the default configuration`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output and diagnostic logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is <user config dir>/xafmodel/config.cue)")
	rootCmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "append diagnostic log lines to this file")

	rootCmd.AddCommand(
		newOpenCommand(app, flags),
		newResolveCommand(app, flags),
		newTreeCommand(app, flags),
		newResetDialogCommand(app, flags),
		newConfigCommand(app, flags),
	)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the command tree with the process streams. It is called by
// main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
