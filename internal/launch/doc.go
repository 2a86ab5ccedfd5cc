// SPDX-License-Identifier: MPL-2.0

// Package launch starts the Model Editor as a detached process.
//
// Detached returns as soon as the operating system confirms the start. The
// process runs in its own session (Unix) or process group (Windows) with no
// standard streams attached, so it outlives the command that launched it.
// Its eventual exit is observed by a background goroutine and exposed
// through Result.
package launch
