// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/xafmodel/xafmodel/internal/testutil"
	"github.com/xafmodel/xafmodel/pkg/types"
)

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files map[string]string
		// model is the selected file relative to the fixture root;
		// defaults to MyProj/Model.xafml.
		model string
		// want holds slash paths relative to the fixture root.
		want       []string
		convention Convention
	}{
		{
			name: "compiled artifact",
			files: map[string]string{
				"MyProj/bin/Debug/net8.0/MyProj.dll": "",
				"MyProj/Model.xafml":                 "",
			},
			want:       []string{"MyProj/bin/Debug/net8.0/MyProj.dll", "MyProj"},
			convention: ConventionCompiledArtifact,
		},
		{
			name: "artifact name match is case-insensitive",
			files: map[string]string{
				"MyProj/bin/Release/NET6.0-windows/myproj.Module.DLL": "",
				"MyProj/Model.xafml": "",
			},
			want:       []string{"MyProj/bin/Release/NET6.0-windows/myproj.Module.DLL", "MyProj"},
			convention: ConventionCompiledArtifact,
		},
		{
			name: "configurations then targets in sorted order",
			files: map[string]string{
				"MyProj/bin/Release/net8.0/MyProj.dll": "",
				"MyProj/bin/Debug/net8.0/MyProj.dll":   "",
				"MyProj/bin/Debug/net6.0/MyProj.dll":   "",
				"MyProj/Model.xafml":                   "",
			},
			want:       []string{"MyProj/bin/Debug/net6.0/MyProj.dll", "MyProj"},
			convention: ConventionCompiledArtifact,
		},
		{
			name: "non target directories and foreign dlls are skipped",
			files: map[string]string{
				"MyProj/bin/Debug/ref/MyProj.dll":        "",
				"MyProj/bin/Debug/net8.0/DevExpress.dll": "",
				"MyProj/bin/Debug/net8.0/MyProj.exe":     "",
				"MyProj/App.exe":                         "",
				"MyProj/Model.xafml":                     "",
			},
			want:       []string{"MyProj/App.exe.config", "MyProj/App.exe", "MyProj"},
			convention: ConventionLegacyExecutable,
		},
		{
			name: "legacy executable",
			files: map[string]string{
				"MyProj/App.exe":           "",
				"MyProj/App.exe.config":    "",
				"MyProj/Model/Model.xafml": "",
			},
			model:      "MyProj/Model/Model.xafml",
			want:       []string{"MyProj/App.exe.config", "MyProj/App.exe", "MyProj/Model"},
			convention: ConventionLegacyExecutable,
		},
		{
			name: "bare fallback",
			files: map[string]string{
				"MyProj/MyProj.csproj": "",
				"MyProj/Model.xafml":   "",
			},
			want:       []string{"MyProj/Model.xafml"},
			convention: ConventionBare,
		},
		{
			name: "empty bin directory",
			files: map[string]string{
				"MyProj/bin/":        "",
				"MyProj/Model.xafml": "",
			},
			want:       []string{"MyProj/Model.xafml"},
			convention: ConventionBare,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			testutil.Tree(t, root, tt.files)

			rec := &testutil.LogRecorder{}
			model := tt.model
			if model == "" {
				model = "MyProj/Model.xafml"
			}
			modelFile := filepath.Join(root, filepath.FromSlash(model))

			got := NewResolver(rec).Resolve(
				types.FilesystemPath(filepath.Join(root, "MyProj")),
				types.FilesystemPath(modelFile),
			)

			want := make([]string, len(tt.want))
			for i, rel := range tt.want {
				want[i] = filepath.Join(root, filepath.FromSlash(rel))
			}
			if !slices.Equal(got.Args, want) {
				t.Errorf("Resolve() args = %q, want %q", got.Args, want)
			}
			if got.Convention != tt.convention {
				t.Errorf("Resolve() convention = %v, want %v", got.Convention, tt.convention)
			}
			if len(rec.Lines()) == 0 {
				t.Error("Resolve() logged nothing")
			}
		})
	}
}

func TestResolver_ZeroValue(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	model := filepath.Join(root, "Model.xafml")
	testutil.MustWriteFile(t, model, "")

	var r Resolver
	got := r.Resolve(types.FilesystemPath(root), types.FilesystemPath(model))
	if got.Convention != ConventionBare || len(got.Args) != 1 || got.Args[0] != model {
		t.Errorf("Resolve() = %+v, want bare invocation of %q", got, model)
	}
}

func TestInvocation_Artifact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		inv  Invocation
		want types.FilesystemPath
	}{
		{"compiled", Invocation{ConventionCompiledArtifact, []string{"a.dll", "dir"}}, "a.dll"},
		{"legacy", Invocation{ConventionLegacyExecutable, []string{"a.exe.config", "a.exe", "dir"}}, "a.exe"},
		{"bare", Invocation{ConventionBare, []string{"Model.xafml"}}, ""},
		{"malformed", Invocation{ConventionCompiledArtifact, nil}, ""},
	}
	for _, tt := range tests {
		if got := tt.inv.Artifact(); got != tt.want {
			t.Errorf("%s: Artifact() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestConvention_String(t *testing.T) {
	t.Parallel()

	if got := ConventionLegacyExecutable.String(); got != "legacy-executable" {
		t.Errorf("String() = %q", got)
	}
	if got := Convention(42).String(); got != "unknown" {
		t.Errorf("String() = %q, want unknown", got)
	}
}

func TestResolver_Resolve_Symlinks(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.Tree(t, root, map[string]string{
		"out/Debug/net8.0/MyProj.dll": "",
		"MyProj/bin/":                 "",
		"MyProj/Model.xafml":          "",
	})
	if err := os.Symlink(filepath.Join(root, "out", "Debug"), filepath.Join(root, "MyProj", "bin", "Debug")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got := NewResolver(nil).Resolve(
		types.FilesystemPath(filepath.Join(root, "MyProj")),
		types.FilesystemPath(filepath.Join(root, "MyProj", "Model.xafml")),
	)
	if got.Convention != ConventionCompiledArtifact {
		t.Fatalf("Resolve() convention = %v, want %v", got.Convention, ConventionCompiledArtifact)
	}
	want := filepath.Join(root, "MyProj", "bin", "Debug", "net8.0", "MyProj.dll")
	if got.Args[0] != want {
		t.Errorf("Resolve() artifact = %q, want %q", got.Args[0], want)
	}
}
