// SPDX-License-Identifier: MPL-2.0

// Package types defines small value types shared by the resolution pipeline,
// the build and launch wrappers, and the CLI layer.
package types
