// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from config.cue in the platform config directory
// (%APPDATA%\xafmodel on Windows, ~/Library/Application Support/xafmodel on macOS,
// $XDG_CONFIG_HOME/xafmodel elsewhere) or from an explicit --config file. The file is
// validated against an embedded CUE schema (config_schema.cue) and merged over the
// built-in defaults; XAFMODEL_<SECTION>_<KEY> environment variables override both.
package config
