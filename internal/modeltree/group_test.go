// SPDX-License-Identifier: MPL-2.0

package modeltree

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/xafmodel/xafmodel/internal/testutil"
	"github.com/xafmodel/xafmodel/pkg/types"
)

// summary flattens groups to label -> variant labels (or "!" prefix when the
// canonical file is missing) for compact comparisons.
func summary(groups []Group) []string {
	var out []string
	for _, g := range groups {
		label := g.Label
		if !g.Exists {
			label = "!" + label
		}
		out = append(out, label)
		for _, v := range g.Variants {
			out = append(out, "  "+v.Label)
		}
	}
	return out
}

func TestGroupFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files []string
		want  []string
	}{
		{
			name: "localized and diff variants",
			files: []string{
				"Model.DesignedDiffs_sv.xafml",
				"Model_sv.xafml",
				"Model.xafml",
				"Model.DesignedDiffs.xafml",
			},
			want: []string{
				"Model.DesignedDiffs.xafml",
				"  Model.DesignedDiffs_sv.xafml",
				"Model.xafml",
				"  Model_sv.xafml",
			},
		},
		{
			name: "dot delimited and multiple locales",
			files: []string{
				"Model_de.xafml",
				"Model.xafml",
				"Model.fr-FR.xafml",
				"Model_sv-SE.xafml",
			},
			want: []string{
				"Model.xafml",
				"  Model.fr-FR.xafml",
				"  Model_de.xafml",
				"  Model_sv-SE.xafml",
			},
		},
		{
			name:  "variant without canonical file",
			files: []string{"Module/Model_de.xafml"},
			want: []string{
				"!Module/Model.xafml",
				"  Module/Model_de.xafml",
			},
		},
		{
			name:  "unrelated names are singletons",
			files: []string{"Custom.xafml", "Layouts.xafml"},
			want:  []string{"Custom.xafml", "Layouts.xafml"},
		},
		{
			name: "groups are per directory",
			files: []string{
				"Win/Model.xafml",
				"Blazor/Model_de.xafml",
				"Blazor/Model.xafml",
				"Win/Model_de.xafml",
			},
			want: []string{
				"Blazor/Model.xafml",
				"  Blazor/Model_de.xafml",
				"Win/Model.xafml",
				"  Win/Model_de.xafml",
			},
		},
		{
			name:  "case-insensitive classification",
			files: []string{"model.xafml", "MODEL_DE.xafml"},
			want: []string{
				"model.xafml",
				"  MODEL_DE.xafml",
			},
		},
		{
			name:  "case-insensitive ordering",
			files: []string{"b.xafml", "A.xafml", "a.xafml"},
			want:  []string{"A.xafml", "a.xafml", "b.xafml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			groups := GroupFiles(tt.files, "/root")
			if got := summary(groups); !slices.Equal(got, tt.want) {
				t.Errorf("GroupFiles() =\n%q\nwant\n%q", got, tt.want)
			}

			// Every input file appears exactly once.
			seen := map[string]int{}
			for _, f := range Files(groups) {
				seen[f.Label]++
			}
			for _, f := range tt.files {
				if seen[f] != 1 {
					t.Errorf("file %q appears %d times", f, seen[f])
				}
			}
			// The canonical member is never its own child.
			for _, g := range groups {
				for _, v := range g.Variants {
					if v.Label == g.Label {
						t.Errorf("group %q lists itself as a variant", g.Label)
					}
				}
			}
		})
	}
}

func TestCanonicalName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"Model.xafml", "Model.xafml", true},
		{"Model_sv.xafml", "Model.xafml", true},
		{"Model.DesignedDiffs.xafml", "Model.DesignedDiffs.xafml", true},
		{"Model.DesignedDiffs_sv.xafml", "Model.DesignedDiffs.xafml", true},
		{"Model.DesignedDiffs.Localization.de.xafml", "Model.DesignedDiffs.xafml", true},
		{"Other.xafml", "Other.xafml", true},
		{"Model.xml", "", false},
	}
	for _, tt := range tests {
		got, ok := CanonicalName(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("CanonicalName(%q) = (%q, %v), want (%q, %v)", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestScan(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.Tree(t, root, map[string]string{
		"App.Module/Model.DesignedDiffs.xafml":    "",
		"App.Module/Model.DesignedDiffs_de.xafml": "",
		"App.Win/Model.xafml":                     "",
		"App.Win/Model_de.xafml":                  "",
		"App.Win/bin/Debug/Model.xafml":           "",
		"App.Win/Program.cs":                      "",
		"App.Win/Empty.xafml/":                    "",
	})

	groups, err := Scan(types.FilesystemPath(root), DefaultIgnore)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	want := []string{
		"App.Module/Model.DesignedDiffs.xafml",
		"  App.Module/Model.DesignedDiffs_de.xafml",
		"App.Win/Model.xafml",
		"  App.Win/Model_de.xafml",
	}
	if got := summary(groups); !slices.Equal(got, want) {
		t.Errorf("Scan() =\n%q\nwant\n%q", got, want)
	}

	wantPath := types.FilesystemPath(filepath.Join(root, "App.Win", "Model.xafml"))
	if groups[1].Path != wantPath {
		t.Errorf("group path = %q, want %q", groups[1].Path, wantPath)
	}
}

func TestScan_NoIgnore(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.Tree(t, root, map[string]string{
		"Model.xafml":           "",
		"bin/Debug/Model.xafml": "",
	})

	groups, err := Scan(types.FilesystemPath(root), nil)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(groups) != 2 {
		t.Errorf("Scan() returned %d groups, want 2: %q", len(groups), summary(groups))
	}
}

func TestScan_BadIgnorePattern(t *testing.T) {
	t.Parallel()

	_, err := Scan(types.FilesystemPath(t.TempDir()), []string{"[unclosed"})
	if !errors.Is(err, doublestar.ErrBadPattern) {
		t.Errorf("Scan() error = %v, want ErrBadPattern", err)
	}
}
