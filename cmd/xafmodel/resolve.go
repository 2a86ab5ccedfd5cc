// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xafmodel/xafmodel/internal/app/pipeline"
	"github.com/xafmodel/xafmodel/internal/artifact"
	"github.com/xafmodel/xafmodel/pkg/types"
)

type resolveFlagValues struct {
	pipelineFlagValues
	format outputFormat
}

func newResolveCommand(app *App, root *rootFlagValues) *cobra.Command {
	flags := &resolveFlagValues{format: formatText}

	cmd := &cobra.Command{
		Use:   "resolve <file.xafml>",
		Short: "Show what open would do, without building or launching",
		Long: `Resolve the project, DevExpress version, Model Editor path, solution and
Model Editor arguments for a model file. Nothing is built or started; a
missing Model Editor or solution is reported rather than treated as an error.`,
		Args: cobra.ExactArgs(1),
		RunE: app.withSession(root, func(cmd *cobra.Command, args []string, s *session) error {
			return runResolve(app, s, flags, args[0])
		}),
	}

	cmd.Flags().BoolVar(&flags.noBuild, "no-build", false, "report the plan as if --no-build were given to open")
	cmd.Flags().StringVar(&flags.editor, "editor", "", "Model Editor executable (overrides model_editor.path)")
	cmd.Flags().Var(&flags.format, "format", "output format: text, json or yaml")
	return cmd
}

func runResolve(app *App, s *session, flags *resolveFlagValues, file string) error {
	p := pipeline.New(pipelineOptions(s.cfg, flags.pipelineFlagValues), pipeline.Deps{
		Resolver: artifact.NewResolver(s.log),
		Log:      s.log,
	})

	plan, err := p.Plan(types.FilesystemPath(file))
	if err != nil {
		f, ok := pipeline.AsFailure(err)
		if !ok {
			return err
		}
		issueID := f.IssueID
		if !s.verbose {
			issueID = 0
		}
		return newServiceError(err, issueID, ErrorStyle.Render("✗ ")+f.Message+"\n")
	}

	if flags.format != formatText {
		return writeStructured(app.stdout, flags.format, plan)
	}
	printPlan(app.stdout, plan)
	return nil
}

func printPlan(w io.Writer, plan pipeline.Plan) {
	row := func(key, value string) {
		fmt.Fprintf(w, "%s %s\n", CmdStyle.Render(fmt.Sprintf("%-12s", key+":")), value)
	}

	fmt.Fprintln(w, TitleStyle.Render("Model Editor plan"))
	row("Model file", plan.SelectedFile.String())
	row("Project", fmt.Sprintf("%s %s", plan.Project, SubtitleStyle.Render("("+plan.ProjectKind+")")))
	row("Version", plan.Version.String())

	editor := plan.Editor.String()
	if !plan.EditorExists {
		editor += " " + WarningStyle.Render("(not found)")
	}
	row("Editor", editor)

	switch {
	case plan.BuildSkipped:
		row("Build", SubtitleStyle.Render("skipped"))
	case plan.Solution == "":
		row("Build", WarningStyle.Render("no solution found"))
	default:
		row("Build", plan.Solution.String())
	}

	convention := plan.Convention
	if plan.Convention != artifact.ConventionBare.String() && !plan.ArtifactExists {
		convention += " " + WarningStyle.Render("(artifact not built yet)")
	}
	row("Convention", convention)
	row("Command", plan.CommandLine)
}
