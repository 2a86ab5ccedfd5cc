// SPDX-License-Identifier: MPL-2.0

// Package project locates .NET project and solution descriptors by walking
// up from a selected file, and extracts the DevExpress XAF version a project
// references.
//
// File organization:
//   - locate.go: upward directory walk (FindProject, FindSolution)
//   - version.go: Version value type and package-reference extraction
package project
