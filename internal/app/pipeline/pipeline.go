// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xafmodel/xafmodel/internal/artifact"
	"github.com/xafmodel/xafmodel/internal/build"
	"github.com/xafmodel/xafmodel/internal/issue"
	"github.com/xafmodel/xafmodel/internal/launch"
	"github.com/xafmodel/xafmodel/internal/logsink"
	"github.com/xafmodel/xafmodel/internal/project"
	"github.com/xafmodel/xafmodel/pkg/fspath"
	"github.com/xafmodel/xafmodel/pkg/types"
)

// MissingArtifactMessage is reported when an artifact is required but none was found.
const MissingArtifactMessage = "No DLL or EXE found for Model Editor. Please build the solution first."

type (
	// Notifier shows a message to the user.
	Notifier interface {
		Notify(message string, severity Severity)
	}

	// Builder builds a solution.
	Builder interface {
		Build(ctx context.Context, solution types.FilesystemPath) build.Result
	}

	// Resolver computes the Model Editor arguments.
	Resolver interface {
		Resolve(projectDir, modelFile types.FilesystemPath) artifact.Invocation
	}

	// Confirmer is asked before the editor starts. An error wrapping
	// context.Canceled aborts the run as canceled.
	Confirmer interface {
		Confirm(ctx context.Context, exe string, args []string) error
	}

	// Launcher starts the editor detached from this process.
	Launcher interface {
		Detached(exe types.FilesystemPath, args []string) (*launch.Result, error)
	}

	// NotifyFunc adapts a function to Notifier.
	NotifyFunc func(message string, severity Severity)

	// Options are the per-run settings taken from configuration and flags.
	Options struct {
		// EditorOverride replaces the derived editor path when non-blank.
		EditorOverride string
		// InstallRoot is the parent of the "DevExpress <version>" folders.
		InstallRoot string
		// SkipBuild skips locating and building the solution.
		SkipBuild bool
		// RequireArtifact aborts when the arguments point at no existing binary.
		RequireArtifact bool
		// Wait blocks until the editor exits and reports a non-zero exit.
		Wait bool
	}

	// Deps are the collaborators of a Pipeline. Nil Confirmer skips
	// confirmation; nil Notifier and Log discard.
	Deps struct {
		Notifier  Notifier
		Builder   Builder
		Resolver  Resolver
		Confirmer Confirmer
		Launcher  Launcher
		Log       logsink.Sink
	}

	// Pipeline opens model files in the Model Editor.
	Pipeline struct {
		opts Options
		deps Deps
	}

	// Outcome records what a successful run did.
	Outcome struct {
		SelectedFile types.FilesystemPath
		Project      project.Descriptor
		Version      project.Version
		Editor       types.FilesystemPath
		// Solution is zero when the build was skipped.
		Solution   project.Solution
		Built      bool
		Invocation artifact.Invocation
		Launch     *launch.Result
		// Exit is the editor's terminal status when Options.Wait is set.
		Exit launch.Status
	}
)

// Notify calls f.
func (f NotifyFunc) Notify(message string, severity Severity) { f(message, severity) }

// New creates a Pipeline.
func New(opts Options, deps Deps) *Pipeline {
	if deps.Log == nil {
		deps.Log = logsink.Discard
	}
	if deps.Notifier == nil {
		deps.Notifier = NotifyFunc(func(string, Severity) {})
	}
	return &Pipeline{opts: opts, deps: deps}
}

// Run opens selectedFile in the Model Editor. On failure it notifies once
// and returns a *Failure; a canceled start dialog returns ErrCanceled.
func (p *Pipeline) Run(ctx context.Context, selectedFile types.FilesystemPath) (out Outcome, err error) {
	stage := StageProject
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{}
			err = p.fail(&Failure{
				Stage:   stage,
				Kind:    KindUnexpected,
				IssueID: issue.UnexpectedFailureId,
				Message: fmt.Sprintf("Unexpected error: %v", r),
				Err:     fmt.Errorf("panic in %s: %v", stage, r),
			})
		}
	}()

	selected, err := fspath.Abs(selectedFile)
	if err != nil {
		return Outcome{}, p.fail(&Failure{
			Stage:   stage,
			Kind:    KindUnexpected,
			IssueID: issue.UnexpectedFailureId,
			Message: "Unexpected error: " + err.Error(),
			Err:     err,
		})
	}
	out.SelectedFile = selected
	p.logf("Command triggered for file: %s", selected)

	desc, ok := project.FindProject(selected)
	if !ok {
		return Outcome{}, p.fail(&Failure{
			Stage:   stage,
			Kind:    KindNotFound,
			IssueID: issue.ProjectNotFoundId,
			Message: "Could not find a project file (.csproj) or Directory.Build.props for " + selected.String() + ".",
		})
	}
	out.Project = desc
	p.logf("Project file found: %s", desc.Path)

	stage = StageVersion
	version, err := project.ExtractVersion(desc.Path)
	if err != nil {
		return Outcome{}, p.fail(&Failure{
			Stage:   stage,
			Kind:    KindParseFailure,
			IssueID: issue.VersionNotFoundId,
			Message: "Could not determine DevExpress version from project file " + desc.Path.String() + ".",
			Err:     err,
		})
	}
	out.Version = version
	p.logf("DevExpress version: %s", version)

	stage = StageEditor
	editor, f := p.locateEditor(version)
	if f != nil {
		return Outcome{}, p.fail(f)
	}
	out.Editor = editor

	if p.opts.SkipBuild {
		p.logf("Build skipped")
	} else {
		stage = StageSolution
		sln, ok := project.FindSolution(selected)
		if !ok {
			return Outcome{}, p.fail(&Failure{
				Stage:   stage,
				Kind:    KindNotFound,
				IssueID: issue.SolutionNotFoundId,
				Message: "Could not find a .sln file for " + selected.String() + ".",
			})
		}
		out.Solution = sln
		p.logf("Solution found: %s", sln.Path)

		stage = StageBuild
		if f := p.build(ctx, sln); f != nil {
			return Outcome{}, p.fail(f)
		}
		out.Built = true
	}

	stage = StageArtifact
	inv := p.deps.Resolver.Resolve(desc.Dir(), selected)
	out.Invocation = inv
	if p.opts.RequireArtifact && !isFile(inv.Artifact()) {
		p.logf("%s", MissingArtifactMessage)
		return Outcome{}, p.fail(&Failure{
			Stage:   stage,
			Kind:    KindNotFound,
			IssueID: issue.ArtifactNotFoundId,
			Message: MissingArtifactMessage,
		})
	}

	stage = StageConfirm
	if p.deps.Confirmer != nil {
		if err := p.deps.Confirmer.Confirm(ctx, editor.String(), inv.Args); err != nil {
			if errors.Is(err, context.Canceled) {
				p.logf("Model Editor start canceled")
				p.deps.Notifier.Notify("Model Editor start canceled.", SeverityInfo)
				return Outcome{}, fmt.Errorf("%w: %w", ErrCanceled, err)
			}
			return Outcome{}, p.fail(&Failure{
				Stage:   stage,
				Kind:    KindUnexpected,
				IssueID: issue.UnexpectedFailureId,
				Message: "Unexpected error: " + err.Error(),
				Err:     err,
			})
		}
	}

	stage = StageLaunch
	p.logf("Launching Model Editor with args: %s", launch.CommandLine(editor.String(), inv.Args...))
	res, err := p.deps.Launcher.Detached(editor, inv.Args)
	if err != nil {
		return Outcome{}, p.fail(&Failure{
			Stage:   stage,
			Kind:    KindLaunchFailure,
			IssueID: issue.LaunchFailedId,
			Message: "Failed to start Model Editor: " + err.Error(),
			Err:     err,
		})
	}
	if res == nil || !res.Started {
		return Outcome{}, p.fail(&Failure{
			Stage:   stage,
			Kind:    KindLaunchFailure,
			IssueID: issue.LaunchFailedId,
			Message: "Model Editor process did not start. Check path and permissions.",
		})
	}
	out.Launch = res

	if !p.opts.Wait {
		p.logf("Model Editor launched (PID %d)", res.PID)
		return out, nil
	}

	status, err := res.Wait(ctx)
	if err != nil {
		// Interrupted while waiting; the editor keeps running.
		p.logf("Stopped waiting for Model Editor (PID %d): %v", res.PID, err)
		out.Exit = status
		return out, nil
	}
	out.Exit = status
	p.logf("Model Editor exited: %s", status)
	if status.Failed() {
		return Outcome{}, p.fail(exitFailure(status))
	}
	return out, nil
}

// Editor derives the editor path for version and reports whether it exists.
// It never fails.
func (p *Pipeline) Editor(version project.Version) (types.FilesystemPath, bool) {
	path := EditorPath(version, p.opts.EditorOverride, p.opts.InstallRoot)
	return path, isFile(path)
}

func (p *Pipeline) locateEditor(version project.Version) (types.FilesystemPath, *Failure) {
	path, exists := p.Editor(version)
	if strings.TrimSpace(p.opts.EditorOverride) != "" {
		p.logf("Using configured Model Editor path: %s", path)
	} else {
		p.logf("Model Editor path (derived): %s", path)
	}
	if !exists {
		p.logf("Model Editor executable not found: %s", path)
		return "", &Failure{
			Stage:   StageEditor,
			Kind:    KindNotFound,
			IssueID: issue.ModelEditorNotFoundId,
			Message: fmt.Sprintf("Model Editor executable not found: %s\n"+
				"Download the correct version from DevExpress (%s) or set model_editor.path in the configuration.",
				path, issue.DownloadURL),
		}
	}
	return path, nil
}

func (p *Pipeline) build(ctx context.Context, sln project.Solution) *Failure {
	res := p.deps.Builder.Build(ctx, sln.Path)
	if res.Succeeded {
		return nil
	}
	f := &Failure{
		Stage:   StageBuild,
		Kind:    KindBuildFailure,
		IssueID: issue.BuildFailedId,
		Err:     res.Err,
	}
	if res.Err != nil {
		f.Message = "Build could not run: " + res.Err.Error()
	} else {
		f.Message = fmt.Sprintf("Build failed with exit code %d. Model Editor will not be started.", res.ExitCode)
		f.Err = fmt.Errorf("build exited with code %d", res.ExitCode)
	}
	return f
}

func exitFailure(s launch.Status) *Failure {
	f := &Failure{
		Stage:   StageLaunch,
		Kind:    KindLaunchFailure,
		IssueID: issue.LaunchFailedId,
	}
	if s.State == launch.StateErrored {
		f.Message = "Model Editor process error: " + s.Reason
		f.Err = errors.New(s.Reason)
	} else {
		f.Message = fmt.Sprintf("Model Editor exited with code %d", s.Code)
		f.Err = fmt.Errorf("model editor exited with code %d", s.Code)
	}
	return f
}

// fail logs and notifies f once, then returns it.
func (p *Pipeline) fail(f *Failure) error {
	if f.Err != nil {
		p.logf("ERROR (%s): %s: %v", f.Stage, f.Message, f.Err)
	} else {
		p.logf("ERROR (%s): %s", f.Stage, f.Message)
	}
	p.deps.Notifier.Notify(f.Message, SeverityError)
	return f
}

func (p *Pipeline) logf(format string, args ...any) {
	logsink.Printf(p.deps.Log, format, args...)
}
