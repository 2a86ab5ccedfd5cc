// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

const (
	// ThemeDefault uses the base huh theme.
	ThemeDefault Theme = "default"
	// ThemeCharm uses the Charm theme.
	ThemeCharm Theme = "charm"
	// ThemeDracula uses the Dracula theme.
	ThemeDracula Theme = "dracula"
	// ThemeCatppuccin uses the Catppuccin theme.
	ThemeCatppuccin Theme = "catppuccin"
	// ThemeBase16 uses the Base16 theme.
	ThemeBase16 Theme = "base16"
)

type (
	// Theme represents the visual theme for prompts.
	Theme string

	// Config holds common configuration for prompts.
	Config struct {
		// Theme specifies the visual theme to use.
		Theme Theme
		// Accessible enables huh's line-based mode for screen readers.
		Accessible bool
		// Input and Output default to stdin and stderr.
		Input  io.Reader
		Output io.Writer
	}
)

// DefaultConfig returns the prompt configuration for the current process.
// Accessible mode is enabled when stdin is not a terminal or the ACCESSIBLE
// environment variable is set. Prompts write to stderr so that stdout stays
// clean for machine-readable output.
func DefaultConfig() Config {
	return Config{
		Theme:      ThemeDefault,
		Accessible: !IsInputTerminal() || os.Getenv("ACCESSIBLE") != "",
		Input:      os.Stdin,
		Output:     os.Stderr,
	}
}

// IsInputTerminal reports whether stdin is connected to a terminal.
func IsInputTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ParseTheme maps a configuration value to a Theme; unknown names yield
// ThemeDefault.
func ParseTheme(name string) Theme {
	switch t := Theme(name); t {
	case ThemeCharm, ThemeDracula, ThemeCatppuccin, ThemeBase16:
		return t
	default:
		return ThemeDefault
	}
}

func huhTheme(t Theme) *huh.Theme {
	switch t {
	case ThemeCharm:
		return huh.ThemeCharm()
	case ThemeDracula:
		return huh.ThemeDracula()
	case ThemeCatppuccin:
		return huh.ThemeCatppuccin()
	case ThemeBase16:
		return huh.ThemeBase16()
	default:
		return huh.ThemeBase()
	}
}
