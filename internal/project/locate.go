// SPDX-License-Identifier: MPL-2.0

package project

import (
	"os"
	"strings"

	"github.com/xafmodel/xafmodel/pkg/fspath"
	"github.com/xafmodel/xafmodel/pkg/types"
)

const (
	// KindProject identifies a *.csproj project file.
	KindProject Kind = iota
	// KindBuildProps identifies a Directory.Build.props file used as the
	// project root when no *.csproj exists in the directory.
	KindBuildProps
)

const (
	// ProjectExt is the project file extension.
	ProjectExt = ".csproj"
	// BuildPropsName is the shared MSBuild properties file name.
	BuildPropsName = "Directory.Build.props"
	// SolutionExt is the solution file extension.
	SolutionExt = ".sln"
)

type (
	// Kind distinguishes the two project descriptor flavors.
	Kind int

	// Descriptor is a located project descriptor.
	Descriptor struct {
		Path types.FilesystemPath
		Kind Kind
	}

	// Solution is a located solution descriptor.
	Solution struct {
		Path types.FilesystemPath
	}

	// matchFunc returns the matching file in dir, if any.
	matchFunc func(dir types.FilesystemPath, entries []os.DirEntry) (types.FilesystemPath, bool)
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindProject:
		return "project"
	case KindBuildProps:
		return "build-props"
	default:
		return "unknown"
	}
}

// Dir returns the directory containing the descriptor.
func (d Descriptor) Dir() types.FilesystemPath {
	return fspath.Dir(d.Path)
}

// Dir returns the directory containing the solution.
func (s Solution) Dir() types.FilesystemPath {
	return fspath.Dir(s.Path)
}

// FindProject walks upward from the directory of selectedFile looking for the
// nearest project descriptor. In each directory the first *.csproj file in
// name order wins; otherwise Directory.Build.props is accepted. The
// filesystem root is the walk boundary and is not examined.
func FindProject(selectedFile types.FilesystemPath) (Descriptor, bool) {
	var kind Kind
	path, ok := walkUp(fspath.Dir(fspath.Normalize(selectedFile)), func(dir types.FilesystemPath, entries []os.DirEntry) (types.FilesystemPath, bool) {
		if name, found := firstFileWithSuffix(dir, entries, ProjectExt); found {
			kind = KindProject
			return fspath.JoinStr(dir, name), true
		}
		for _, e := range entries {
			if e.Name() == BuildPropsName && isFile(dir, e.Name()) {
				kind = KindBuildProps
				return fspath.JoinStr(dir, BuildPropsName), true
			}
		}
		return "", false
	})
	if !ok {
		return Descriptor{}, false
	}
	return Descriptor{Path: path, Kind: kind}, true
}

// FindSolution walks upward from the directory of selectedFile looking for
// the nearest *.sln file, using the same boundary rules as FindProject.
func FindSolution(selectedFile types.FilesystemPath) (Solution, bool) {
	path, ok := walkUp(fspath.Dir(fspath.Normalize(selectedFile)), func(dir types.FilesystemPath, entries []os.DirEntry) (types.FilesystemPath, bool) {
		if name, found := firstFileWithSuffix(dir, entries, SolutionExt); found {
			return fspath.JoinStr(dir, name), true
		}
		return "", false
	})
	if !ok {
		return Solution{}, false
	}
	return Solution{Path: path}, true
}

// walkUp applies match to start and each ancestor until the parent of a
// directory equals the directory itself. A directory that cannot be listed
// counts as no match and the walk continues.
func walkUp(start types.FilesystemPath, match matchFunc) (types.FilesystemPath, bool) {
	dir := start
	for dir != "" && !fspath.IsRoot(dir) {
		// os.ReadDir returns entries sorted by filename, which fixes the
		// tie-break among several candidates in one directory.
		if entries, err := os.ReadDir(string(dir)); err == nil {
			if path, ok := match(dir, entries); ok {
				return path, true
			}
		}
		dir = fspath.Dir(dir)
	}
	return "", false
}

func firstFileWithSuffix(dir types.FilesystemPath, entries []os.DirEntry, suffix string) (string, bool) {
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), suffix) && isFile(dir, e.Name()) {
			return e.Name(), true
		}
	}
	return "", false
}

// isFile reports whether dir/name exists and is not a directory. Symlinks
// are followed, so a linked shared props file counts.
func isFile(dir types.FilesystemPath, name string) bool {
	info, err := os.Stat(string(fspath.JoinStr(dir, name)))
	return err == nil && !info.IsDir()
}
