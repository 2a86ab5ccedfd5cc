// SPDX-License-Identifier: MPL-2.0

//go:build windows

package launch

import "syscall"

// detachedProcess is the DETACHED_PROCESS creation flag: the child does not
// inherit the parent's console.
const detachedProcess = 0x00000008

func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: detachedProcess | syscall.CREATE_NEW_PROCESS_GROUP,
	}
}
