// SPDX-License-Identifier: MPL-2.0

package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/xafmodel/xafmodel/internal/launch"
	"github.com/xafmodel/xafmodel/internal/logsink"
	"github.com/xafmodel/xafmodel/pkg/types"
)

// DefaultCommand is the build tool invoked when none is configured.
const DefaultCommand = "dotnet"

// Builder runs "<Command> build <solution> <ExtraArgs...>".
type Builder struct {
	// Command is the build tool; empty means DefaultCommand.
	Command string
	// ExtraArgs are appended after the solution path.
	ExtraArgs []string
	// Live, when set, receives stdout and stderr as they are produced in
	// addition to the captured buffers.
	Live io.Writer
	// Log receives the command line, exit code and captured output.
	Log logsink.Sink
}

// NewBuilder creates a Builder for command (DefaultCommand when empty).
func NewBuilder(command string, extraArgs []string, sink logsink.Sink) *Builder {
	return &Builder{Command: command, ExtraArgs: extraArgs, Log: sink}
}

// Args returns the argument list passed to the build tool.
func (b *Builder) Args(solution types.FilesystemPath) []string {
	args := make([]string, 0, 2+len(b.ExtraArgs))
	args = append(args, "build", string(solution))
	return append(args, b.ExtraArgs...)
}

// Build runs the build and waits for it to exit. There is no timeout; only
// cancellation of ctx stops the process early. Build never panics on a
// missing tool; the failure is reported in Result.Err.
func (b *Builder) Build(ctx context.Context, solution types.FilesystemPath) Result {
	command := b.command()
	args := b.Args(solution)
	logsink.Printf(b.Log, "Building solution: %s", launch.CommandLine(command, args...))

	cmd := exec.CommandContext(ctx, command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if b.Live != nil {
		cmd.Stdout = io.MultiWriter(&stdout, b.Live)
		cmd.Stderr = io.MultiWriter(&stderr, b.Live)
	}

	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			result.ExitCode = types.ExitCode(exitErr.ExitCode())
		} else {
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = fmt.Errorf("build canceled: %w", ctxErr)
			}
			failed := newStartFailure(err)
			failed.Stdout, failed.Stderr = result.Stdout, result.Stderr
			result = failed
		}
	}
	result.Succeeded = result.Err == nil && result.ExitCode.IsSuccess()

	b.logResult(result)
	return result
}

func (b *Builder) command() string {
	if c := strings.TrimSpace(b.Command); c != "" {
		return c
	}
	return DefaultCommand
}

func (b *Builder) logResult(r Result) {
	if r.Err != nil {
		logsink.Printf(b.Log, "Build could not run: %v", r.Err)
	} else {
		logsink.Printf(b.Log, "Build exited with code %s", r.ExitCode)
	}
	if out := strings.TrimRight(r.Stdout, "\r\n"); out != "" {
		logsink.Printf(b.Log, "Build stdout:\n%s", out)
	}
	if out := strings.TrimRight(r.Stderr, "\r\n"); out != "" {
		logsink.Printf(b.Log, "Build stderr:\n%s", out)
	}
}
