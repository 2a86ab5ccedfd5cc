// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/xafmodel/xafmodel/internal/app/pipeline"
	"github.com/xafmodel/xafmodel/internal/config"
	"github.com/xafmodel/xafmodel/internal/issue"
	"github.com/xafmodel/xafmodel/internal/logsink"
	"github.com/xafmodel/xafmodel/pkg/types"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra handler receives an App and builds
	// its collaborators through it.
	App struct {
		Config ConfigProvider
		// Builder, Confirmer and Launcher replace the production
		// collaborators of the open pipeline when set.
		Builder   pipeline.Builder
		Confirmer pipeline.Confirmer
		Launcher  pipeline.Launcher
		configDir types.FilesystemPath
		stdout    io.Writer
		stderr    io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config    ConfigProvider
		Builder   pipeline.Builder
		Confirmer pipeline.Confirmer
		Launcher  pipeline.Launcher
		// ConfigDir overrides the platform configuration directory.
		ConfigDir types.FilesystemPath
		Stdout    io.Writer
		Stderr    io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// rootFlagValues holds the persistent flags of the root command.
	rootFlagValues struct {
		verbose    bool
		configPath string
		logFile    string
	}

	// session is the per-invocation state derived from configuration and
	// the global flags.
	session struct {
		cfg      *config.Config
		loadOpts config.LoadOptions
		verbose  bool
		log      *logsink.Logger
	}

	// sessionRunE is a command handler that needs loaded configuration.
	sessionRunE func(cmd *cobra.Command, args []string, s *session) error
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config:    deps.Config,
		Builder:   deps.Builder,
		Confirmer: deps.Confirmer,
		Launcher:  deps.Launcher,
		configDir: deps.ConfigDir,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
	}, nil
}

// loadOptions returns the configuration inputs selected by the global flags.
func (a *App) loadOptions(flags *rootFlagValues) config.LoadOptions {
	return config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(flags.configPath),
		ConfigDirPath:  a.configDir,
	}
}

// newSession loads configuration and opens the log sink. Verbose output is
// enabled by either the flag or ui.verbose; the log file flag wins over
// log.file.
func (a *App) newSession(ctx context.Context, flags *rootFlagValues) (*session, error) {
	opts := a.loadOptions(flags)
	cfg, err := a.Config.Load(ctx, opts)
	if err != nil {
		styled := ErrorStyle.Render("Configuration error: ") + formatErrorForDisplay(err, flags.verbose) + "\n"
		return nil, newServiceError(err, issue.ConfigLoadFailedId, styled)
	}

	verbose := flags.verbose || cfg.UI.Verbose
	logFile := flags.logFile
	if logFile == "" {
		logFile = cfg.Log.File
	}
	var console io.Writer
	if verbose {
		console = a.stderr
	}
	log, err := logsink.Open(console, logFile)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, loadOpts: opts, verbose: verbose, log: log}, nil
}

// withSession adapts a session handler to cobra. Errors that already reached
// the user (ServiceErrors, ExitErrors) are turned into a silent ExitError so
// fang does not print them a second time.
func (a *App) withSession(flags *rootFlagValues, run sessionRunE) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		s, err := a.newSession(cmd.Context(), flags)
		if err != nil {
			return a.handleError(cmd, err, nil)
		}
		defer func() {
			if closeErr := s.log.Close(); closeErr != nil {
				fmt.Fprintf(a.stderr, "%s could not close log file: %v\n", WarningStyle.Render("!"), closeErr)
			}
		}()

		return a.handleError(cmd, run(cmd, args, s), s)
	}
}

func (a *App) handleError(cmd *cobra.Command, err error, s *session) error {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		cmd.SilenceErrors = true
		return exitErr
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		cmd.SilenceErrors = true
		scheme := config.ColorSchemeAuto
		var sink logsink.Sink = logsink.Discard
		if s != nil {
			scheme = s.cfg.UI.ColorScheme
			sink = s.log
		}
		renderServiceError(a.stderr, svcErr, scheme, sink)
		return &ExitError{Code: 1, Err: svcErr}
	}
	return err
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
