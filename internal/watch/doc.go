// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs a callback when model files under a directory
// change.
//
// Events are debounced: a burst of writes (an editor saving through a temp
// file, a build copying files) produces one callback carrying every changed
// path. Callbacks never overlap; an event that arrives while one is running
// is retried after the next quiet period.
package watch
