// SPDX-License-Identifier: MPL-2.0

// Package tui holds the interactive prompts of the command line, built on
// charmbracelet/huh. Prompts fall back to huh's accessible mode when stdin
// is not a terminal.
package tui
