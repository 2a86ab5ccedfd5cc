// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. The issue catalog maps each failure class of the open
// pipeline to a Markdown help page rendered with glamour.
package issue
