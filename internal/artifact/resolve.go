// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"os"
	"strings"

	"github.com/xafmodel/xafmodel/internal/logsink"
	"github.com/xafmodel/xafmodel/pkg/fspath"
	"github.com/xafmodel/xafmodel/pkg/types"
)

const (
	binDirName      = "bin"
	targetDirPrefix = "net"
	libraryExt      = ".dll"
	executableExt   = ".exe"
	configExt       = ".config"
)

// Resolver computes Model Editor invocations. A zero Resolver logs nothing.
type Resolver struct {
	Log logsink.Sink
}

// NewResolver creates a Resolver that reports probing steps to sink.
func NewResolver(sink logsink.Sink) *Resolver {
	return &Resolver{Log: sink}
}

// Resolve returns the invocation for modelFile inside the project rooted at
// projectDir.
func (r *Resolver) Resolve(projectDir, modelFile types.FilesystemPath) Invocation {
	projectDir = fspath.Normalize(projectDir)
	modelFile = fspath.Normalize(modelFile)

	if dll, ok := r.findCompiledArtifact(projectDir); ok {
		r.logf("Using DLL: %s", dll)
		return Invocation{
			Convention: ConventionCompiledArtifact,
			Args:       []string{string(dll), string(projectDir)},
		}
	}

	if exe, ok := r.findExecutable(projectDir); ok {
		config := string(exe) + configExt
		r.logf("No DLL found, using EXE: %s with config %s", exe, config)
		return Invocation{
			Convention: ConventionLegacyExecutable,
			Args:       []string{config, string(exe), string(fspath.Dir(modelFile))},
		}
	}

	r.logf("No DLL or EXE found, opening model file only: %s", modelFile)
	return Invocation{
		Convention: ConventionBare,
		Args:       []string{string(modelFile)},
	}
}

// findCompiledArtifact searches bin/<configuration>/<net*>/ for a .dll whose
// name contains the project directory name. Configurations are visited
// before targets, both in sorted order.
func (r *Resolver) findCompiledArtifact(projectDir types.FilesystemPath) (types.FilesystemPath, bool) {
	binDir := fspath.JoinStr(projectDir, binDirName)
	configs, ok := r.listDirs(binDir)
	if !ok {
		return "", false
	}
	projectName := strings.ToLower(fspath.Base(projectDir))

	for _, cfg := range configs {
		cfgDir := fspath.JoinStr(binDir, cfg)
		targets, _ := r.listDirs(cfgDir)
		for _, target := range targets {
			if !hasPrefixFold(target, targetDirPrefix) {
				continue
			}
			targetDir := fspath.JoinStr(cfgDir, target)
			r.logf("Probing %s", targetDir)
			entries, err := os.ReadDir(string(targetDir))
			if err != nil {
				r.logf("Cannot list %s: %v", targetDir, err)
				continue
			}
			for _, e := range entries {
				name := e.Name()
				if !fspath.HasSuffixFold(name, libraryExt) || !strings.Contains(strings.ToLower(name), projectName) {
					continue
				}
				if dll := fspath.JoinStr(targetDir, name); isFile(dll) {
					return dll, true
				}
			}
		}
	}
	return "", false
}

func (r *Resolver) findExecutable(projectDir types.FilesystemPath) (types.FilesystemPath, bool) {
	entries, err := os.ReadDir(string(projectDir))
	if err != nil {
		r.logf("Cannot list %s: %v", projectDir, err)
		return "", false
	}
	for _, e := range entries {
		if fspath.HasSuffixFold(e.Name(), executableExt) && isFile(fspath.JoinStr(projectDir, e.Name())) {
			return fspath.JoinStr(projectDir, e.Name()), true
		}
	}
	return "", false
}

// listDirs returns the names of subdirectories of dir in sorted order.
func (r *Resolver) listDirs(dir types.FilesystemPath) ([]string, bool) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		if !os.IsNotExist(err) {
			r.logf("Cannot list %s: %v", dir, err)
		}
		return nil, false
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if isDir(fspath.JoinStr(dir, e.Name())) {
			names = append(names, e.Name())
		}
	}
	return names, true
}

func isFile(path types.FilesystemPath) bool {
	info, err := os.Stat(string(path))
	return err == nil && !info.IsDir()
}

// isDir follows symlinks, so a linked bin/<config> directory is listed.
func isDir(path types.FilesystemPath) bool {
	info, err := os.Stat(string(path))
	return err == nil && info.IsDir()
}

func (r *Resolver) logf(format string, args ...any) {
	if r == nil || r.Log == nil {
		return
	}
	logsink.Printf(r.Log, format, args...)
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
