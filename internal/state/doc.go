// SPDX-License-Identifier: MPL-2.0

// Package state persists boolean user preferences in a TOML file kept next
// to the configuration file:
//
//	[flags]
//	suppress_start_dialog = true
package state
