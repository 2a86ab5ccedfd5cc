// SPDX-License-Identifier: MPL-2.0

// Package cueutil holds the CUE parsing helpers shared by configuration loading.
//
// A user file is compiled, unified with a definition from an embedded schema,
// validated and decoded. Validation errors carry the offending field as a
// JSON-style path (e.g. "build.extra_args[0]") prefixed with the file name.
//
//	m, err := cueutil.DecodeMap(schema, data, "#Config", cueutil.WithFilename(path))
package cueutil
