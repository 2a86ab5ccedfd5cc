// SPDX-License-Identifier: MPL-2.0

package build

import "github.com/xafmodel/xafmodel/pkg/types"

// Result contains the outcome of one build.
type Result struct {
	// Succeeded is true only when the process ran and exited with code 0.
	Succeeded bool
	// ExitCode is the process exit code, or 1 when it never started.
	ExitCode types.ExitCode
	// Stdout and Stderr hold the captured output.
	Stdout string
	Stderr string
	// Err is set when the process could not be started or waited on.
	Err error
}

func newStartFailure(err error) Result {
	return Result{ExitCode: 1, Err: err}
}
