// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"fmt"
	"sync"

	"github.com/xafmodel/xafmodel/pkg/types"
)

const (
	// StatePending means the process is still running.
	StatePending State = iota
	// StateExited means the process terminated with an exit code.
	StateExited
	// StateErrored means the process could not be started or waited on.
	StateErrored
)

type (
	// State is the coarse lifecycle state of a launched process.
	State int

	// Status is a snapshot of a launched process. Code is meaningful for
	// StateExited, Reason for StateErrored.
	Status struct {
		State  State
		Code   types.ExitCode
		Reason string
	}

	// Result describes a launch attempt. Started and PID are fixed when
	// Detached returns; the terminal Status arrives later.
	Result struct {
		Started bool
		PID     int

		mu     sync.Mutex
		status Status
		done   chan struct{}
	}
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateExited:
		return "exited"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// String renders the status as "pending", "exited(<code>)" or
// "errored(<reason>)".
func (s Status) String() string {
	switch s.State {
	case StateExited:
		return fmt.Sprintf("exited(%d)", s.Code)
	case StateErrored:
		return fmt.Sprintf("errored(%s)", s.Reason)
	default:
		return s.State.String()
	}
}

// Failed reports whether the status is terminal and unsuccessful.
func (s Status) Failed() bool {
	switch s.State {
	case StateErrored:
		return true
	case StateExited:
		return !s.Code.IsSuccess()
	default:
		return false
	}
}

func newResult() *Result {
	return &Result{done: make(chan struct{})}
}

// CompletedResult returns a Result that is already terminal with status s.
// It serves launchers that observe the exit synchronously. A pending s
// leaves the Result pending.
func CompletedResult(started bool, pid int, s Status) *Result {
	res := newResult()
	res.Started = started
	res.PID = pid
	if s.State != StatePending {
		res.finish(s)
	}
	return res
}

// Status returns the current status without blocking.
func (r *Result) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Done returns a channel that is closed once the status is terminal.
func (r *Result) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the process reaches a terminal status or ctx is done.
func (r *Result) Wait(ctx context.Context) (Status, error) {
	select {
	case <-r.done:
		return r.Status(), nil
	case <-ctx.Done():
		return r.Status(), ctx.Err()
	}
}

// finish records the terminal status. Only the first call has effect.
func (r *Result) finish(s Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status.State != StatePending {
		return
	}
	r.status = s
	close(r.done)
}
