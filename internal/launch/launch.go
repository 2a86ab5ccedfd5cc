// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/xafmodel/xafmodel/internal/logsink"
	"github.com/xafmodel/xafmodel/pkg/types"
)

// Launcher starts detached processes and reports their lifecycle to Log.
type Launcher struct {
	Log logsink.Sink
}

// NewLauncher creates a Launcher that logs to sink.
func NewLauncher(sink logsink.Sink) *Launcher {
	return &Launcher{Log: sink}
}

// Detached starts exe with args and returns once the start is confirmed.
// A start failure returns a Result in StateErrored together with the error.
func (l *Launcher) Detached(exe types.FilesystemPath, args []string) (*Result, error) {
	res := newResult()
	sink := l.sink()

	logsink.Printf(sink, "Starting: %s", CommandLine(string(exe), args...))

	cmd := exec.Command(string(exe), args...)
	// Nil standard streams are connected to the null device.
	cmd.Stdin, cmd.Stdout, cmd.Stderr = nil, nil, nil
	cmd.SysProcAttr = detachedProcAttr()

	if err := cmd.Start(); err != nil {
		logsink.Printf(sink, "Failed to start %s: %v", exe, err)
		res.finish(Status{State: StateErrored, Reason: err.Error()})
		return res, fmt.Errorf("start %s: %w", exe, err)
	}

	res.Started = true
	res.PID = cmd.Process.Pid
	logsink.Printf(sink, "Model Editor started with PID %d", res.PID)

	go observe(cmd, res, sink)
	return res, nil
}

func (l *Launcher) sink() logsink.Sink {
	if l == nil || l.Log == nil {
		return logsink.Discard
	}
	return l.Log
}

// observe waits for cmd and records how it ended.
func observe(cmd *exec.Cmd, res *Result, sink logsink.Sink) {
	err := cmd.Wait()
	if err == nil {
		logsink.Printf(sink, "Model Editor (PID %d) exited with code 0", res.PID)
		res.finish(Status{State: StateExited})
		return
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		code := types.ExitCode(exitErr.ExitCode())
		logsink.Printf(sink, "Model Editor (PID %d) exited with code %s", res.PID, code)
		res.finish(Status{State: StateExited, Code: code})
		return
	}

	// Killed by a signal (ExitCode() == -1) or the wait itself failed.
	logsink.Printf(sink, "Model Editor (PID %d) error: %v", res.PID, err)
	res.finish(Status{State: StateErrored, Reason: err.Error()})
}
