// SPDX-License-Identifier: MPL-2.0

// Package pipeline orchestrates opening a model file in the Model Editor:
// locate the project, read its DevExpress version, derive the editor path,
// build the solution, resolve the editor arguments, confirm and launch.
//
// Every stage fails closed. The first failing stage aborts the run, produces
// exactly one notification and is returned as a *Failure whose Kind can be
// tested with errors.Is against the Err* sentinels. The collaborators that
// touch processes or the terminal are injected as interfaces so the
// orchestration can be tested without them.
package pipeline
