// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package launch

import "syscall"

// detachedProcAttr starts the child in a new session so it has no
// controlling terminal and survives the parent's exit and signals.
func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
