// SPDX-License-Identifier: MPL-2.0

package modeltree

import (
	"fmt"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/xafmodel/xafmodel/pkg/fspath"
	"github.com/xafmodel/xafmodel/pkg/types"
)

// Pattern selects model files relative to the scanned root.
const Pattern = "**/*.xafml"

var (
	canonicalName = regexp.MustCompile(`(?i)^(Model|.+\.DesignedDiffs)\.xafml$`)
	// The DesignedDiffs alternative comes first so that
	// Model.DesignedDiffs_sv.xafml resolves to Model.DesignedDiffs.xafml
	// rather than Model.xafml.
	variantName = regexp.MustCompile(`(?i)^(.+\.DesignedDiffs|Model)[_.].+\.xafml$`)
)

type (
	// File is one discovered model file.
	File struct {
		Path  types.FilesystemPath `json:"path" yaml:"path"`
		Label string               `json:"label" yaml:"label"`
	}

	// Group is a canonical model file and its variants. Exists is false when
	// only variants of the canonical file were found.
	Group struct {
		File     `yaml:",inline"`
		Exists   bool   `json:"exists" yaml:"exists"`
		Variants []File `json:"variants,omitempty" yaml:"variants,omitempty"`
	}
)

// DefaultIgnore lists build output directories, which hold copies of the
// model files made by the build.
var DefaultIgnore = []string{"**/bin/**", "**/obj/**"}

// Scan finds model files under root and groups them, skipping files whose
// relative path matches one of the ignore patterns. Groups and their
// variants are sorted by label. Every call walks the filesystem again.
func Scan(root types.FilesystemPath, ignore []string) ([]Group, error) {
	for _, p := range ignore {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}

	root = fspath.Normalize(root)
	matches, err := doublestar.Glob(os.DirFS(string(root)), Pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("scan %s for model files: %w", root, err)
	}

	kept := matches[:0]
	for _, rel := range matches {
		if !ignored(rel, ignore) {
			kept = append(kept, rel)
		}
	}
	return GroupFiles(kept, root), nil
}

func ignored(rel string, patterns []string) bool {
	for _, p := range patterns {
		if doublestar.MatchUnvalidated(p, rel) {
			return true
		}
	}
	return false
}

// GroupFiles groups slash-separated paths relative to root. Every input path
// ends up in exactly one group, either as the canonical file or as a variant.
// Variants attach to an existing canonical file ignoring case; when none
// exists, a placeholder group with Exists false is created.
func GroupFiles(relPaths []string, root types.FilesystemPath) []Group {
	var groups []*Group
	var variants []string
	exact := make(map[string]*Group)
	folded := make(map[string]*Group)

	for _, rel := range relPaths {
		_, name := path.Split(rel)
		if base, ok := CanonicalName(name); ok && base != name {
			variants = append(variants, rel)
			continue
		}
		g := &Group{File: newFile(root, rel), Exists: true}
		groups = append(groups, g)
		exact[rel] = g
	}

	// Sorting first makes the case-insensitive fallback pick the same
	// canonical file on every run.
	sort.SliceStable(groups, func(i, j int) bool { return labelLess(groups[i].Label, groups[j].Label) })
	for _, g := range groups {
		key := strings.ToLower(g.Label)
		if _, ok := folded[key]; !ok {
			folded[key] = g
		}
	}

	for _, rel := range variants {
		dir, name := path.Split(rel)
		base, _ := CanonicalName(name)
		canonicalRel := dir + base

		g, ok := exact[canonicalRel]
		if !ok {
			g, ok = folded[strings.ToLower(canonicalRel)]
		}
		if !ok {
			g = &Group{File: newFile(root, canonicalRel)}
			groups = append(groups, g)
			folded[strings.ToLower(canonicalRel)] = g
		}
		g.Variants = append(g.Variants, newFile(root, rel))
	}

	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		sortFiles(g.Variants)
		out = append(out, *g)
	}
	sort.SliceStable(out, func(i, j int) bool { return labelLess(out[i].Label, out[j].Label) })
	return out
}

// CanonicalName returns the canonical file name a model file belongs to. For
// canonical and unrelated names it returns name itself; ok is false only for
// names that are not *.xafml files.
func CanonicalName(name string) (string, bool) {
	if !fspath.HasSuffixFold(name, ".xafml") {
		return "", false
	}
	if canonicalName.MatchString(name) {
		return name, true
	}
	if m := variantName.FindStringSubmatch(name); m != nil {
		return m[1] + ".xafml", true
	}
	return name, true
}

// Files flattens groups into canonical files followed by their variants,
// skipping canonical entries that do not exist.
func Files(groups []Group) []File {
	var out []File
	for _, g := range groups {
		if g.Exists {
			out = append(out, g.File)
		}
		out = append(out, g.Variants...)
	}
	return out
}

func newFile(root types.FilesystemPath, rel string) File {
	return File{
		Path:  fspath.JoinStr(root, strings.Split(rel, "/")...),
		Label: rel,
	}
}

func sortFiles(files []File) {
	sort.SliceStable(files, func(i, j int) bool { return labelLess(files[i].Label, files[j].Label) })
}

// labelLess orders case-insensitively, breaking ties by byte order.
func labelLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}
