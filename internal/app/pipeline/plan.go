// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"github.com/xafmodel/xafmodel/internal/issue"
	"github.com/xafmodel/xafmodel/internal/launch"
	"github.com/xafmodel/xafmodel/internal/project"
	"github.com/xafmodel/xafmodel/pkg/fspath"
	"github.com/xafmodel/xafmodel/pkg/types"
)

// Plan is what Run would do for a file, computed without building or
// launching anything.
type Plan struct {
	SelectedFile   types.FilesystemPath `json:"selected_file" yaml:"selected_file"`
	Project        types.FilesystemPath `json:"project" yaml:"project"`
	ProjectKind    string               `json:"project_kind" yaml:"project_kind"`
	Version        project.Version      `json:"version" yaml:"version"`
	Editor         types.FilesystemPath `json:"editor" yaml:"editor"`
	EditorExists   bool                 `json:"editor_exists" yaml:"editor_exists"`
	Solution       types.FilesystemPath `json:"solution,omitempty" yaml:"solution,omitempty"`
	BuildSkipped   bool                 `json:"build_skipped" yaml:"build_skipped"`
	Convention     string               `json:"convention" yaml:"convention"`
	Args           []string             `json:"args" yaml:"args"`
	ArtifactExists bool                 `json:"artifact_exists" yaml:"artifact_exists"`
	CommandLine    string               `json:"command_line" yaml:"command_line"`
}

// Plan resolves the project, version, editor, solution and arguments for
// selectedFile. Only a missing project or version is a failure; the other
// findings are reported in the Plan. Plan neither notifies nor launches.
func (p *Pipeline) Plan(selectedFile types.FilesystemPath) (Plan, error) {
	selected, err := fspath.Abs(selectedFile)
	if err != nil {
		return Plan{}, &Failure{
			Stage:   StageProject,
			Kind:    KindUnexpected,
			IssueID: issue.UnexpectedFailureId,
			Message: "Unexpected error: " + err.Error(),
			Err:     err,
		}
	}
	plan := Plan{SelectedFile: selected, BuildSkipped: p.opts.SkipBuild}

	desc, ok := project.FindProject(selected)
	if !ok {
		return Plan{}, &Failure{
			Stage:   StageProject,
			Kind:    KindNotFound,
			IssueID: issue.ProjectNotFoundId,
			Message: "Could not find a project file (.csproj) or Directory.Build.props for " + selected.String() + ".",
		}
	}
	plan.Project = desc.Path
	plan.ProjectKind = desc.Kind.String()

	version, err := project.ExtractVersion(desc.Path)
	if err != nil {
		return Plan{}, &Failure{
			Stage:   StageVersion,
			Kind:    KindParseFailure,
			IssueID: issue.VersionNotFoundId,
			Message: "Could not determine DevExpress version from project file " + desc.Path.String() + ".",
			Err:     err,
		}
	}
	plan.Version = version
	plan.Editor, plan.EditorExists = p.Editor(version)

	if sln, ok := project.FindSolution(selected); ok {
		plan.Solution = sln.Path
	}

	inv := p.deps.Resolver.Resolve(desc.Dir(), selected)
	plan.Convention = inv.Convention.String()
	plan.Args = inv.Args
	plan.ArtifactExists = isFile(inv.Artifact())
	plan.CommandLine = launch.CommandLine(plan.Editor.String(), inv.Args...)

	return plan, nil
}
