// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// SetConfigHome points the platform user configuration directory at dir and
// returns a cleanup function restoring the previous environment.
//
// Platform handling (mirrors os.UserConfigDir):
//   - Windows: AppData
//   - macOS: HOME (config lives in $HOME/Library/Application Support)
//   - Linux/others: XDG_CONFIG_HOME
func SetConfigHome(t testing.TB, dir string) func() {
	t.Helper()

	switch runtime.GOOS {
	case "windows":
		return MustSetenv(t, "AppData", dir)
	case "darwin":
		return MustSetenv(t, "HOME", dir)
	default:
		return MustSetenv(t, "XDG_CONFIG_HOME", dir)
	}
}
