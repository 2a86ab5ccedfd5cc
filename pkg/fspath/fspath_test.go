// SPDX-License-Identifier: MPL-2.0

package fspath_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/xafmodel/xafmodel/pkg/fspath"
	"github.com/xafmodel/xafmodel/pkg/platform"
	"github.com/xafmodel/xafmodel/pkg/types"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   types.FilesystemPath
		want types.FilesystemPath
	}{
		{"", ""},
		{"src/App.Module/../App.Module/Model.xafml", types.FilesystemPath(filepath.Join("src", "App.Module", "Model.xafml"))},
		{"C:/Program Files/DevExpress 24.1/", types.FilesystemPath(filepath.Clean(filepath.FromSlash("C:/Program Files/DevExpress 24.1/")))},
		{"./Model.xafml", "Model.xafml"},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			t.Parallel()
			if got := fspath.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestJoinStr(t *testing.T) {
	t.Parallel()

	got := fspath.JoinStr(types.FilesystemPath("bin"), "Debug", "net8.0")
	want := types.FilesystemPath(filepath.Join("bin", "Debug", "net8.0"))
	if got != want {
		t.Errorf("JoinStr() = %q, want %q", got, want)
	}
}

func TestDirAndBase(t *testing.T) {
	t.Parallel()

	p := types.FilesystemPath(filepath.Join("src", "MyProj", "MyProj.csproj"))
	if got, want := fspath.Dir(p), types.FilesystemPath(filepath.Join("src", "MyProj")); got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}
	if got := fspath.Base(p); got != "MyProj.csproj" {
		t.Errorf("Base() = %q, want %q", got, "MyProj.csproj")
	}
}

func TestAbs(t *testing.T) {
	t.Parallel()

	got, err := fspath.Abs(types.FilesystemPath("."))
	if err != nil {
		t.Fatalf("Abs() error = %v", err)
	}
	wantRaw, _ := filepath.Abs(".")
	if got != types.FilesystemPath(wantRaw) {
		t.Errorf("Abs() = %q, want %q", got, wantRaw)
	}
}

func TestIsRoot(t *testing.T) {
	t.Parallel()

	root := types.FilesystemPath("/")
	if runtime.GOOS == platform.Windows {
		root = types.FilesystemPath(`C:\`)
	}
	if !fspath.IsRoot(root) {
		t.Errorf("IsRoot(%q) = false, want true", root)
	}
	if fspath.IsRoot(fspath.JoinStr(root, "src")) {
		t.Errorf("IsRoot() = true for a sub-directory")
	}
}

func TestHasSuffixFold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, suffix string
		want         bool
	}{
		{"MyProj.dll", ".dll", true},
		{"MYPROJ.DLL", ".dll", true},
		{"MyProj.dll.config", ".dll", false},
		{"dll", ".dll", false},
	}
	for _, tt := range tests {
		if got := fspath.HasSuffixFold(tt.name, tt.suffix); got != tt.want {
			t.Errorf("HasSuffixFold(%q, %q) = %v, want %v", tt.name, tt.suffix, got, tt.want)
		}
	}
}

func TestRel(t *testing.T) {
	t.Parallel()

	base := types.FilesystemPath(filepath.Join("work", "repo"))
	target := fspath.JoinStr(base, "App.Module", "Model.xafml")
	if got := fspath.Rel(base, target); got != "App.Module/Model.xafml" {
		t.Errorf("Rel() = %q, want %q", got, "App.Module/Model.xafml")
	}
}
