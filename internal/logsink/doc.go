// SPDX-License-Identifier: MPL-2.0

// Package logsink provides the diagnostic log capability handed to every
// pipeline component. A Sink has a single AppendLine operation; the
// production implementation writes timestamped records through
// charmbracelet/log to any number of writers (stderr in verbose mode, a log
// file when configured).
package logsink
