// SPDX-License-Identifier: MPL-2.0

// Package artifact probes a project's build output to decide which
// arguments the Model Editor is started with.
//
// Three conventions are tried in order: a compiled library under
// bin/<configuration>/net*/, a legacy executable with a .config companion in
// the project directory, and finally the model file alone. The probe is a
// heuristic; when several artifacts match, the first in sorted listing order
// is used.
package artifact
