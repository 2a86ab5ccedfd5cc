// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/xafmodel/xafmodel/internal/modeltree"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	// ColorSchemeAuto detects the terminal background.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark palette.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light palette.
	ColorSchemeLight ColorScheme = "light"

	// DefaultInstallRoot is where DevExpress installers place versioned folders.
	DefaultInstallRoot = "C:/Program Files"
	// DefaultBuildCommand is the build tool invoked as "<command> build <solution>".
	DefaultBuildCommand = "dotnet"
)

var (
	// ErrInvalidColorScheme is the sentinel error wrapped by InvalidColorSchemeError.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidBuildConfig is the sentinel error wrapped by InvalidBuildConfigError.
	ErrInvalidBuildConfig = errors.New("invalid build config")
	// ErrInvalidIgnorePattern is the sentinel error wrapped by InvalidIgnorePatternError.
	ErrInvalidIgnorePattern = errors.New("invalid ignore pattern")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme selects the output palette.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidBuildConfigError is returned when build is enabled without a command.
	InvalidBuildConfigError struct {
		Command string
	}

	// InvalidIgnorePatternError is returned for a malformed tree.ignore entry.
	InvalidIgnorePatternError struct {
		Pattern string
	}

	// InvalidConfigError collects field-level validation errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// ModelEditor locates the Model Editor executable
		ModelEditor ModelEditorConfig `json:"model_editor" mapstructure:"model_editor" yaml:"model_editor"`
		// Build configures the pre-launch solution build
		Build BuildConfig `json:"build" mapstructure:"build" yaml:"build"`
		// Launch configures how the Model Editor is started
		Launch LaunchConfig `json:"launch" mapstructure:"launch" yaml:"launch"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui" yaml:"ui"`
		// Log configures the diagnostic log
		Log LogConfig `json:"log" mapstructure:"log" yaml:"log"`
		// Tree configures model file scans
		Tree TreeConfig `json:"tree" mapstructure:"tree" yaml:"tree"`
	}

	// ModelEditorConfig locates the Model Editor executable.
	ModelEditorConfig struct {
		// Path overrides the derived executable path when non-blank
		Path string `json:"path" mapstructure:"path" yaml:"path"`
		// InstallRoot is the parent of the "DevExpress <version>" folders
		InstallRoot string `json:"install_root" mapstructure:"install_root" yaml:"install_root"`
	}

	// BuildConfig configures the pre-launch build.
	BuildConfig struct {
		Enabled   bool     `json:"enabled" mapstructure:"enabled" yaml:"enabled"`
		Command   string   `json:"command" mapstructure:"command" yaml:"command"`
		ExtraArgs []string `json:"extra_args" mapstructure:"extra_args" yaml:"extra_args"`
	}

	// LaunchConfig configures the launch stage.
	LaunchConfig struct {
		// RequireArtifact aborts when no DLL or EXE was found
		RequireArtifact bool `json:"require_artifact" mapstructure:"require_artifact" yaml:"require_artifact"`
		// Wait blocks until the Model Editor exits
		Wait bool `json:"wait" mapstructure:"wait" yaml:"wait"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose" yaml:"verbose"`
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" yaml:"color_scheme"`
		// ConfirmStart shows the start dialog before launching
		ConfirmStart bool `json:"confirm_start" mapstructure:"confirm_start" yaml:"confirm_start"`
		// PromptTheme names the huh theme of the start dialog
		PromptTheme string `json:"prompt_theme" mapstructure:"prompt_theme" yaml:"prompt_theme"`
	}

	// LogConfig configures the diagnostic log.
	LogConfig struct {
		File string `json:"file" mapstructure:"file" yaml:"file"`
	}

	// TreeConfig configures model file scans.
	TreeConfig struct {
		Ignore []string `json:"ignore" mapstructure:"ignore" yaml:"ignore"`
	}
)

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// Validate returns an error if the ColorScheme is not one of the defined schemes.
func (cs ColorScheme) Validate() error {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: cs}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Validate returns an error if the build is enabled with a blank command.
func (c BuildConfig) Validate() error {
	if c.Enabled && strings.TrimSpace(c.Command) == "" {
		return &InvalidBuildConfigError{Command: c.Command}
	}
	return nil
}

// Error implements the error interface for InvalidBuildConfigError.
func (e *InvalidBuildConfigError) Error() string {
	return fmt.Sprintf("invalid build config: command %q must be non-empty when build is enabled", e.Command)
}

// Unwrap returns ErrInvalidBuildConfig for errors.Is() compatibility.
func (e *InvalidBuildConfigError) Unwrap() error { return ErrInvalidBuildConfig }

// Validate returns an error for the first malformed ignore pattern.
func (c TreeConfig) Validate() error {
	for _, p := range c.Ignore {
		if !doublestar.ValidatePattern(p) {
			return &InvalidIgnorePatternError{Pattern: p}
		}
	}
	return nil
}

// Error implements the error interface for InvalidIgnorePatternError.
func (e *InvalidIgnorePatternError) Error() string {
	return fmt.Sprintf("invalid ignore pattern %q", e.Pattern)
}

// Unwrap returns ErrInvalidIgnorePattern for errors.Is() compatibility.
func (e *InvalidIgnorePatternError) Unwrap() error { return ErrInvalidIgnorePattern }

// Validate returns an InvalidConfigError collecting every field error.
func (c Config) Validate() error {
	var errs []error
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Build.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Tree.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ModelEditor: ModelEditorConfig{
			Path:        "",
			InstallRoot: DefaultInstallRoot,
		},
		Build: BuildConfig{
			Enabled:   true,
			Command:   DefaultBuildCommand,
			ExtraArgs: []string{},
		},
		Launch: LaunchConfig{
			RequireArtifact: false,
			Wait:            false,
		},
		UI: UIConfig{
			Verbose:      false,
			ColorScheme:  ColorSchemeAuto,
			ConfirmStart: true,
			PromptTheme:  "default",
		},
		Log: LogConfig{File: ""},
		Tree: TreeConfig{
			Ignore: slices.Clone(modeltree.DefaultIgnore),
		},
	}
}
