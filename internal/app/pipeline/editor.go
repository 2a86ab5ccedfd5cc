// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"os"
	"strings"

	"github.com/xafmodel/xafmodel/internal/project"
	"github.com/xafmodel/xafmodel/pkg/fspath"
	"github.com/xafmodel/xafmodel/pkg/types"
)

// DefaultInstallRoot is used when no install root is configured.
const DefaultInstallRoot = "C:/Program Files"

// EditorPath returns the Model Editor executable for version. A non-blank
// override wins; otherwise the path is derived from the short version
// below installRoot:
//
//	<root>/DevExpress 24.1/Components/Tools/eXpressAppFrameworkNetCore/Model Editor/DevExpress.ExpressApp.ModelEditor.v24.1.exe
func EditorPath(version project.Version, override, installRoot string) types.FilesystemPath {
	if o := strings.TrimSpace(override); o != "" {
		return fspath.Normalize(types.FilesystemPath(o))
	}

	root := strings.TrimSpace(installRoot)
	if root == "" {
		root = DefaultInstallRoot
	}
	short := version.Short()
	return fspath.JoinStr(fspath.Normalize(types.FilesystemPath(root)),
		"DevExpress "+short,
		"Components",
		"Tools",
		"eXpressAppFrameworkNetCore",
		"Model Editor",
		"DevExpress.ExpressApp.ModelEditor.v"+short+".exe",
	)
}

func isFile(p types.FilesystemPath) bool {
	if p == "" {
		return false
	}
	info, err := os.Stat(string(p))
	return err == nil && !info.IsDir()
}
