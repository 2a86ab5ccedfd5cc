// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/xafmodel/xafmodel/internal/issue"
	"github.com/xafmodel/xafmodel/pkg/cueutil"
	"github.com/xafmodel/xafmodel/pkg/platform"
	"github.com/xafmodel/xafmodel/pkg/types"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "xafmodel"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// StateFileName is the persisted state file kept beside the config file.
	StateFileName = "state.toml"
	// EnvPrefix prefixes environment overrides, e.g. XAFMODEL_BUILD_ENABLED.
	EnvPrefix = "XAFMODEL"
)

// ErrConfigExists is returned by CreateDefaultConfig when the file exists and force is off.
var ErrConfigExists = errors.New("config file already exists")

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the xafmodel configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (types.FilesystemPath, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return types.FilesystemPath(filepath.Join(configDir, AppName)), nil
}

// FilePath returns the config file the options select: the explicit file
// when set, otherwise config.cue in the (possibly overridden) config directory.
// The file need not exist.
func FilePath(opts LoadOptions) (types.FilesystemPath, error) {
	if opts.ConfigFilePath != "" {
		return opts.ConfigFilePath, nil
	}
	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	return types.FilesystemPath(filepath.Join(string(cfgDir), ConfigFileName+"."+ConfigFileExt)), nil
}

// StatePath returns the state file path, which lives beside the config file.
func StatePath(opts LoadOptions) (types.FilesystemPath, error) {
	cfgPath, err := FilePath(opts)
	if err != nil {
		return "", err
	}
	return types.FilesystemPath(filepath.Join(filepath.Dir(string(cfgPath)), StateFileName)), nil
}

// newViper returns a viper instance holding the defaults and env bindings.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("model_editor.path", defaults.ModelEditor.Path)
	v.SetDefault("model_editor.install_root", defaults.ModelEditor.InstallRoot)
	v.SetDefault("build.enabled", defaults.Build.Enabled)
	v.SetDefault("build.command", defaults.Build.Command)
	v.SetDefault("build.extra_args", defaults.Build.ExtraArgs)
	v.SetDefault("launch.require_artifact", defaults.Launch.RequireArtifact)
	v.SetDefault("launch.wait", defaults.Launch.Wait)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.confirm_start", defaults.UI.ConfirmStart)
	v.SetDefault("ui.prompt_theme", defaults.UI.PromptTheme)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("tree.ignore", defaults.Tree.Ignore)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. The returned path is empty when only defaults applied.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, types.FilesystemPath, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	if err := opts.Validate(); err != nil {
		return nil, "", err
	}

	v := newViper()
	resolvedPath := types.FilesystemPath("")

	cuePath, err := FilePath(opts)
	if err != nil {
		return nil, "", err
	}

	switch {
	case fileExists(cuePath):
		if err := loadCUEIntoViper(v, cuePath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(cuePath.String()).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Run 'xafmodel config show' to see the effective configuration").
				Wrap(err).
				BuildError()
		}
		resolvedPath = cuePath
	case opts.ConfigFilePath != "":
		// An explicit file must exist; the default location may be absent.
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(cuePath.String()).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Run 'xafmodel config init' to create a default configuration").
			Wrap(fmt.Errorf("config file not found: %s", cuePath)).
			BuildError()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// CUE cannot see env overrides, so the typed values are checked again.
	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath.String()).
			WithSuggestion("Check XAFMODEL_* environment variables for invalid values").
			WithSuggestion("Use one of auto, dark or light for ui.color_scheme").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath types.FilesystemPath) (types.FilesystemPath, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// loadCUEIntoViper validates a CUE file against the #Config schema and merges
// its contents into Viper. Fields are optional, so the file is decoded to a
// map rather than a struct and merged over the defaults.
func loadCUEIntoViper(v *viper.Viper, path types.FilesystemPath) error {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := cueutil.DecodeMap(configSchema, data, "#Config", cueutil.WithFilename(path.String()))
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path types.FilesystemPath) bool {
	info, err := os.Stat(string(path))
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration to the file the options
// select and returns its path. An existing file is kept unless force is set,
// in which case ErrConfigExists is returned.
func CreateDefaultConfig(opts LoadOptions, force bool) (types.FilesystemPath, error) {
	cfgPath, err := FilePath(opts)
	if err != nil {
		return "", err
	}

	if !force && fileExists(cfgPath) {
		return cfgPath, fmt.Errorf("%w: %s", ErrConfigExists, cfgPath)
	}

	if err := Save(cfgPath, DefaultConfig()); err != nil {
		return "", err
	}
	return cfgPath, nil
}

// Save writes cfg as CUE to path, creating the parent directory.
func Save(path types.FilesystemPath, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(string(path), []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// xafmodel configuration file\n")
	sb.WriteString("// Environment variables XAFMODEL_<SECTION>_<KEY> override these values.\n")

	sb.WriteString("\nmodel_editor: {\n")
	fmt.Fprintf(&sb, "\tpath: %q\n", cfg.ModelEditor.Path)
	fmt.Fprintf(&sb, "\tinstall_root: %q\n", cfg.ModelEditor.InstallRoot)
	sb.WriteString("}\n")

	sb.WriteString("\nbuild: {\n")
	fmt.Fprintf(&sb, "\tenabled: %v\n", cfg.Build.Enabled)
	fmt.Fprintf(&sb, "\tcommand: %q\n", cfg.Build.Command)
	fmt.Fprintf(&sb, "\textra_args: %s\n", cueStringList(cfg.Build.ExtraArgs))
	sb.WriteString("}\n")

	sb.WriteString("\nlaunch: {\n")
	fmt.Fprintf(&sb, "\trequire_artifact: %v\n", cfg.Launch.RequireArtifact)
	fmt.Fprintf(&sb, "\twait: %v\n", cfg.Launch.Wait)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tconfirm_start: %v\n", cfg.UI.ConfirmStart)
	fmt.Fprintf(&sb, "\tprompt_theme: %q\n", cfg.UI.PromptTheme)
	sb.WriteString("}\n")

	sb.WriteString("\nlog: {\n")
	fmt.Fprintf(&sb, "\tfile: %q\n", cfg.Log.File)
	sb.WriteString("}\n")

	sb.WriteString("\ntree: {\n")
	fmt.Fprintf(&sb, "\tignore: %s\n", cueStringList(cfg.Tree.Ignore))
	sb.WriteString("}\n")

	return sb.String()
}

func cueStringList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
