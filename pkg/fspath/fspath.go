// SPDX-License-Identifier: MPL-2.0

// Package fspath provides typed wrappers around path/filepath for
// types.FilesystemPath. Every path the pipeline compares or joins goes
// through Normalize first, so separators always follow the host convention.
package fspath

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xafmodel/xafmodel/pkg/types"
)

// Normalize converts forward slashes to the host separator and cleans the
// result. On Windows, backslashes are already the host separator; elsewhere
// a backslash is a legal file name character and is left alone.
func Normalize(p types.FilesystemPath) types.FilesystemPath {
	if p == "" {
		return p
	}
	return types.FilesystemPath(filepath.Clean(filepath.FromSlash(string(p))))
}

// Abs normalizes p and resolves it against the working directory.
func Abs(p types.FilesystemPath) (types.FilesystemPath, error) {
	abs, err := filepath.Abs(string(Normalize(p)))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return types.FilesystemPath(abs), nil
}

// JoinStr joins a typed base path with raw string segments, such as names
// returned by os.ReadDir.
func JoinStr(base types.FilesystemPath, elem ...string) types.FilesystemPath {
	parts := make([]string, 1, 1+len(elem))
	parts[0] = string(base)
	parts = append(parts, elem...)
	return types.FilesystemPath(filepath.Join(parts...))
}

// Dir wraps filepath.Dir for FilesystemPath.
func Dir(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Dir(string(p)))
}

// Base wraps filepath.Base for FilesystemPath.
func Base(p types.FilesystemPath) string {
	return filepath.Base(string(p))
}

// IsRoot reports whether dir is a filesystem root ("/", "C:\", a UNC share
// root), i.e. its parent is itself.
func IsRoot(dir types.FilesystemPath) bool {
	return filepath.Dir(string(dir)) == string(dir)
}

// HasSuffixFold reports whether name ends with suffix, ignoring case.
func HasSuffixFold(name, suffix string) bool {
	return len(name) >= len(suffix) && strings.EqualFold(name[len(name)-len(suffix):], suffix)
}

// Rel returns target relative to base using forward slashes, which is the
// form used for display labels. It falls back to the slash form of target
// when no relative path exists (different volumes).
func Rel(base, target types.FilesystemPath) string {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return filepath.ToSlash(string(target))
	}
	return filepath.ToSlash(rel)
}
