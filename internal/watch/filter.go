// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultIgnores are always excluded. Build output directories receive
// copies of the model files on every build and would trigger a refresh
// loop while "dotnet build" runs.
var defaultIgnores = []string{
	"**/.git/**",
	"**/.vs/**",
	"**/bin/**",
	"**/obj/**",
	"**/node_modules/**",
	"**/*~",
	"**/*.swp",
	"**/.DS_Store",
}

// filter decides which paths (relative to the watched root) are relevant.
type filter struct {
	patterns []string
	ignores  []string
}

func newFilter(patterns, ignore []string) (filter, error) {
	if err := validatePatterns(patterns, "watch"); err != nil {
		return filter{}, err
	}
	if err := validatePatterns(ignore, "ignore"); err != nil {
		return filter{}, err
	}
	ignores := make([]string, 0, len(defaultIgnores)+len(ignore))
	ignores = append(ignores, defaultIgnores...)
	ignores = append(ignores, ignore...)
	return filter{patterns: patterns, ignores: ignores}, nil
}

// ignored reports whether rel, or the directory rel names, is excluded.
func (f filter) ignored(rel string) bool {
	s := filepath.ToSlash(rel)
	return anyMatch(f.ignores, s) || anyMatch(f.ignores, s+"/")
}

// selected reports whether rel matches a watch pattern. No patterns selects
// everything.
func (f filter) selected(rel string) bool {
	return len(f.patterns) == 0 || anyMatch(f.patterns, filepath.ToSlash(rel))
}

func anyMatch(patterns []string, name string) bool {
	for _, p := range patterns {
		if doublestar.MatchUnvalidated(p, name) {
			return true
		}
	}
	return false
}

func validatePatterns(patterns []string, label string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("watch: invalid %s pattern %q: %w", label, p, doublestar.ErrBadPattern)
		}
	}
	return nil
}
