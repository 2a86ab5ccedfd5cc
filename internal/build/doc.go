// SPDX-License-Identifier: MPL-2.0

// Package build runs "dotnet build" against a solution and reports whether
// it succeeded. It is the only step of the open pipeline that blocks on an
// external process.
package build
