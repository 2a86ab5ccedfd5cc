// SPDX-License-Identifier: MPL-2.0

package artifact

import "github.com/xafmodel/xafmodel/pkg/types"

const (
	// ConventionCompiledArtifact yields [artifactPath, projectDir].
	ConventionCompiledArtifact Convention = iota
	// ConventionLegacyExecutable yields [configPath, exePath, modelDir].
	ConventionLegacyExecutable
	// ConventionBare yields [modelFilePath].
	ConventionBare
)

type (
	// Convention names the output layout an Invocation was derived from.
	Convention int

	// Invocation is the Model Editor argument list. Args order is fixed by
	// the convention and must be passed through unchanged.
	Invocation struct {
		Convention Convention
		Args       []string
	}
)

// String returns a human-readable convention name.
func (c Convention) String() string {
	switch c {
	case ConventionCompiledArtifact:
		return "compiled-artifact"
	case ConventionLegacyExecutable:
		return "legacy-executable"
	case ConventionBare:
		return "bare"
	default:
		return "unknown"
	}
}

// Artifact returns the path of the binary the invocation points the editor
// at, or "" for ConventionBare.
func (inv Invocation) Artifact() types.FilesystemPath {
	switch inv.Convention {
	case ConventionCompiledArtifact:
		if len(inv.Args) > 0 {
			return types.FilesystemPath(inv.Args[0])
		}
	case ConventionLegacyExecutable:
		if len(inv.Args) > 1 {
			return types.FilesystemPath(inv.Args[1])
		}
	}
	return ""
}
