// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xafmodel/xafmodel/internal/app/pipeline"
	"github.com/xafmodel/xafmodel/internal/artifact"
	"github.com/xafmodel/xafmodel/internal/build"
	"github.com/xafmodel/xafmodel/internal/config"
	"github.com/xafmodel/xafmodel/internal/launch"
	"github.com/xafmodel/xafmodel/internal/state"
	"github.com/xafmodel/xafmodel/internal/tui"
	"github.com/xafmodel/xafmodel/pkg/types"
)

type (
	// pipelineFlagValues are the flags shared by open and resolve.
	pipelineFlagValues struct {
		noBuild bool
		editor  string
	}

	openFlagValues struct {
		pipelineFlagValues
		yes  bool
		wait bool
	}

	// cliNotifier prints pipeline notifications to the terminal.
	cliNotifier struct {
		w io.Writer
	}
)

func newOpenCommand(app *App, root *rootFlagValues) *cobra.Command {
	flags := &openFlagValues{}

	cmd := &cobra.Command{
		Use:   "open <file.xafml>",
		Short: "Build the solution and open a model file in the Model Editor",
		Long: `Open a model file in the DevExpress Model Editor.

The nearest project file (*.csproj or Directory.Build.props) determines the
DevExpress version and therefore which Model Editor is started. The nearest
solution is built first unless --no-build is given or build.enabled is false.
A failed build stops the run.`,
		Example: `  # Build and open
  xafmodel open Module/Model.DesignedDiffs.xafml

  # Open without building, skipping the start dialog
  xafmodel open Module/Model.xafml --no-build --yes

  # Wait for the editor and report a non-zero exit
  xafmodel open Module/Model.xafml --wait`,
		Args: cobra.ExactArgs(1),
		RunE: app.withSession(root, func(cmd *cobra.Command, args []string, s *session) error {
			return runOpen(cmd, app, s, flags, args[0])
		}),
	}

	cmd.Flags().BoolVar(&flags.noBuild, "no-build", false, "skip building the solution")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "skip the start dialog for this run")
	cmd.Flags().BoolVar(&flags.wait, "wait", false, "wait for the Model Editor to exit and report its exit code")
	cmd.Flags().StringVar(&flags.editor, "editor", "", "Model Editor executable (overrides model_editor.path)")
	return cmd
}

func runOpen(cmd *cobra.Command, app *App, s *session, flags *openFlagValues, file string) error {
	statePath, err := config.StatePath(s.loadOpts)
	if err != nil {
		return fmt.Errorf("locate state file: %w", err)
	}

	opts := pipelineOptions(s.cfg, flags.pipelineFlagValues)
	opts.Wait = flags.wait || s.cfg.Launch.Wait

	deps := pipeline.Deps{
		Notifier:  cliNotifier{w: app.stderr},
		Builder:   app.Builder,
		Resolver:  artifact.NewResolver(s.log),
		Confirmer: app.Confirmer,
		Launcher:  app.Launcher,
		Log:       s.log,
	}
	if deps.Builder == nil {
		b := build.NewBuilder(s.cfg.Build.Command, s.cfg.Build.ExtraArgs, s.log)
		if s.verbose {
			b.Live = app.stderr
		}
		deps.Builder = b
	}
	if deps.Confirmer == nil {
		c := tui.NewStartConfirmer(state.NewStore(statePath.String()), s.cfg.UI.ConfirmStart, flags.yes, s.log)
		c.Config.Theme = tui.ParseTheme(s.cfg.UI.PromptTheme)
		deps.Confirmer = c
	} else if flags.yes {
		deps.Confirmer = nil
	}
	if deps.Launcher == nil {
		deps.Launcher = launch.NewLauncher(s.log)
	}

	out, err := pipeline.New(opts, deps).Run(cmd.Context(), types.FilesystemPath(file))
	if err != nil {
		if errors.Is(err, pipeline.ErrCanceled) {
			return &ExitError{Code: 1, Err: err}
		}
		// The notifier already showed the message; verbose mode adds the
		// catalog entry for the failure.
		if f, ok := pipeline.AsFailure(err); ok && s.verbose {
			return newServiceError(err, f.IssueID, "")
		}
		return &ExitError{Code: 1, Err: err}
	}

	fmt.Fprintf(app.stdout, "%s Model Editor started (PID %d)\n", SuccessStyle.Render("✓"), out.Launch.PID)
	if opts.Wait {
		if out.Exit.State == launch.StatePending {
			fmt.Fprintf(app.stdout, "%s Stopped waiting; the Model Editor keeps running\n", WarningStyle.Render("!"))
		} else {
			fmt.Fprintf(app.stdout, "%s Model Editor %s\n", SuccessStyle.Render("✓"), out.Exit)
		}
	}
	return nil
}

// pipelineOptions merges configuration and the shared flags.
func pipelineOptions(cfg *config.Config, flags pipelineFlagValues) pipeline.Options {
	editor := cfg.ModelEditor.Path
	if flags.editor != "" {
		editor = flags.editor
	}
	return pipeline.Options{
		EditorOverride:  editor,
		InstallRoot:     cfg.ModelEditor.InstallRoot,
		SkipBuild:       flags.noBuild || !cfg.Build.Enabled,
		RequireArtifact: cfg.Launch.RequireArtifact,
		Wait:            cfg.Launch.Wait,
	}
}

// Notify prints message with a severity marker.
func (n cliNotifier) Notify(message string, severity pipeline.Severity) {
	var marker string
	switch severity {
	case pipeline.SeverityError:
		marker = ErrorStyle.Render("✗")
	case pipeline.SeverityWarning:
		marker = WarningStyle.Render("!")
	default:
		marker = VerboseStyle.Render("→")
	}
	fmt.Fprintf(n.w, "%s %s\n", marker, message)
}
