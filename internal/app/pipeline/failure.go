// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"errors"

	"github.com/xafmodel/xafmodel/internal/issue"
)

const (
	// KindNotFound covers a missing project, solution, editor or artifact.
	KindNotFound Kind = iota + 1
	// KindParseFailure covers an absent or malformed version.
	KindParseFailure
	// KindBuildFailure covers a non-zero build exit or a build that could not start.
	KindBuildFailure
	// KindLaunchFailure covers an editor that could not start or exited non-zero.
	KindLaunchFailure
	// KindUnexpected covers everything else, including recovered panics.
	KindUnexpected
)

const (
	// StageProject walks upward for a .csproj or Directory.Build.props.
	StageProject Stage = "locate project"
	// StageVersion reads the DevExpress version from the project descriptor.
	StageVersion Stage = "extract version"
	// StageEditor resolves the Model Editor executable for the version.
	StageEditor Stage = "locate model editor"
	// StageSolution walks upward for the .sln to build.
	StageSolution Stage = "locate solution"
	// StageBuild runs the build command against the solution.
	StageBuild Stage = "build"
	// StageArtifact probes the project output for the editor arguments.
	StageArtifact Stage = "resolve arguments"
	// StageConfirm asks the user before the editor starts.
	StageConfirm Stage = "confirm start"
	// StageLaunch starts the Model Editor process.
	StageLaunch Stage = "launch"
)

const (
	// SeverityInfo is a progress or success notification.
	SeverityInfo Severity = iota
	// SeverityWarning is a notification that does not stop the run.
	SeverityWarning
	// SeverityError reports the failure that ended the run.
	SeverityError
)

var (
	// ErrNotFound is matched by errors.Is for a KindNotFound Failure.
	ErrNotFound = errors.New("not found")
	// ErrParseFailure is matched by errors.Is for a KindParseFailure Failure.
	ErrParseFailure = errors.New("parse failure")
	// ErrBuildFailure is matched by errors.Is for a KindBuildFailure Failure.
	ErrBuildFailure = errors.New("build failure")
	// ErrLaunchFailure is matched by errors.Is for a KindLaunchFailure Failure.
	ErrLaunchFailure = errors.New("launch failure")
	// ErrUnexpected is matched by errors.Is for a KindUnexpected Failure.
	ErrUnexpected = errors.New("unexpected failure")

	// ErrCanceled is returned when the user aborts the start dialog.
	ErrCanceled = errors.New("model editor start canceled")
)

type (
	// Kind classifies a Failure.
	Kind int

	// Stage names the pipeline step a Failure came from.
	Stage string

	// Severity grades a notification.
	Severity int

	// Failure is the error returned by a failed run. Message is the
	// user-facing notification text; Err is the underlying cause, if any.
	Failure struct {
		Stage   Stage
		Kind    Kind
		IssueID issue.Id
		Message string
		Err     error
	}
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not-found"
	case KindParseFailure:
		return "parse-failure"
	case KindBuildFailure:
		return "build-failure"
	case KindLaunchFailure:
		return "launch-failure"
	case KindUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// Sentinel returns the Err* value matching the kind.
func (k Kind) Sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindParseFailure:
		return ErrParseFailure
	case KindBuildFailure:
		return ErrBuildFailure
	case KindLaunchFailure:
		return ErrLaunchFailure
	default:
		return ErrUnexpected
	}
}

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

func (s Stage) String() string { return string(s) }

// Error returns the notification message.
func (f *Failure) Error() string {
	return f.Message
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is/As.
func (f *Failure) Unwrap() []error {
	if f.Err == nil {
		return []error{f.Kind.Sentinel()}
	}
	return []error{f.Kind.Sentinel(), f.Err}
}

// AsFailure returns the *Failure in err's chain, if any.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	ok := errors.As(err, &f)
	return f, ok
}
