// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xafmodel/xafmodel/internal/testutil"
	"github.com/xafmodel/xafmodel/pkg/types"
)

func TestLoadOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       LoadOptions
		wantErrs   int
		wantErrAny bool
	}{
		{name: "all empty", opts: LoadOptions{}},
		{name: "all valid", opts: LoadOptions{ConfigFilePath: "/tmp/config.cue", ConfigDirPath: "/tmp/config"}},
		{name: "blank file path", opts: LoadOptions{ConfigFilePath: "   "}, wantErrs: 1, wantErrAny: true},
		{name: "both blank", opts: LoadOptions{ConfigFilePath: " ", ConfigDirPath: "\t"}, wantErrs: 2, wantErrAny: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.Validate()
			if (err != nil) != tt.wantErrAny {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErrAny)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrInvalidLoadOptions) {
				t.Errorf("error should wrap ErrInvalidLoadOptions, got %v", err)
			}
			var loadErr *InvalidLoadOptionsError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected *InvalidLoadOptionsError, got %T", err)
			}
			if len(loadErr.FieldErrors) != tt.wantErrs {
				t.Errorf("expected %d field errors, got %d", tt.wantErrs, len(loadErr.FieldErrors))
			}
			if !errors.Is(loadErr.FieldErrors[0], types.ErrInvalidFilesystemPath) {
				t.Errorf("field error should wrap ErrInvalidFilesystemPath, got %v", loadErr.FieldErrors[0])
			}
		})
	}
}

func TestProvider_Load_UsesConfigDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), "launch: { wait: true }\n")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Launch.Wait {
		t.Error("expected launch.wait from the config dir file")
	}
}

func TestLoadWithSource(t *testing.T) {
	t.Parallel()

	t.Run("defaults only", func(t *testing.T) {
		t.Parallel()

		loaded, err := LoadWithSource(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(t.TempDir())})
		if err != nil {
			t.Fatalf("LoadWithSource() error: %v", err)
		}
		if loaded.Source != "" {
			t.Errorf("expected empty source, got %q", loaded.Source)
		}
		if loaded.Config.Build.Command != DefaultBuildCommand {
			t.Errorf("expected default build command, got %q", loaded.Config.Build.Command)
		}
	})

	t.Run("explicit file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.cue")
		testutil.MustWriteFile(t, path, "ui: { verbose: true }\n")

		loaded, err := LoadWithSource(context.Background(), LoadOptions{ConfigFilePath: types.FilesystemPath(path)})
		if err != nil {
			t.Fatalf("LoadWithSource() error: %v", err)
		}
		if string(loaded.Source) != path {
			t.Errorf("expected source %q, got %q", path, loaded.Source)
		}
		if !loaded.Config.UI.Verbose {
			t.Error("expected ui.verbose from file")
		}
	})

	t.Run("invalid options", func(t *testing.T) {
		t.Parallel()

		_, err := LoadWithSource(context.Background(), LoadOptions{ConfigDirPath: " "})
		if !errors.Is(err, ErrInvalidLoadOptions) {
			t.Errorf("expected ErrInvalidLoadOptions, got %v", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := LoadWithSource(ctx, LoadOptions{})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if err != nil && !strings.Contains(err.Error(), "load config canceled") {
			t.Errorf("unexpected error text: %v", err)
		}
	})
}
