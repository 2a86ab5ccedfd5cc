// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/xafmodel/xafmodel/internal/testutil"
)

// startWatcher runs w in the background and returns a channel that receives
// each callback's changed paths.
func startWatcher(t *testing.T, cfg Config) (*Watcher, <-chan []string) {
	t.Helper()

	calls := make(chan []string, 16)
	cfg.OnChange = func(_ context.Context, changed []string) error {
		calls <- changed
		return nil
	}
	if cfg.Debounce == 0 {
		cfg.Debounce = 100 * time.Millisecond
	}

	w, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-errCh:
			if err != nil {
				t.Errorf("Run() error = %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("Run() did not return after cancel")
		}
	})
	return w, calls
}

func awaitCall(t *testing.T, calls <-chan []string) []string {
	t.Helper()
	select {
	case got := <-calls:
		return got
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for OnChange")
		return nil
	}
}

func TestWatcher_DebouncesModelChanges(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, calls := startWatcher(t, Config{Root: root, Patterns: []string{"**/*.xafml"}})

	for _, name := range []string{"Model.xafml", "Model_de.xafml", "notes.txt"} {
		testutil.MustWriteFile(t, filepath.Join(root, name), "<Application/>")
		time.Sleep(10 * time.Millisecond)
	}

	got := awaitCall(t, calls)
	if !slices.Equal(got, []string{"Model.xafml", "Model_de.xafml"}) {
		t.Errorf("changed = %q, want both model files only", got)
	}

	select {
	case extra := <-calls:
		t.Errorf("unexpected second callback: %q", extra)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_IgnoresBuildOutput(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.MustMkdirAll(t, filepath.Join(root, "bin", "Debug"))
	_, calls := startWatcher(t, Config{Root: root, Patterns: []string{"**/*.xafml"}})

	testutil.MustWriteFile(t, filepath.Join(root, "bin", "Debug", "Model.xafml"), "")
	testutil.MustWriteFile(t, filepath.Join(root, "Model.xafml"), "")

	got := awaitCall(t, calls)
	if !slices.Equal(got, []string{"Model.xafml"}) {
		t.Errorf("changed = %q, want only Model.xafml", got)
	}
}

func TestWatcher_NewSubdirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, calls := startWatcher(t, Config{Root: root, Patterns: []string{"**/*.xafml"}})

	testutil.MustMkdirAll(t, filepath.Join(root, "Module"))
	got := awaitCall(t, calls)
	if !slices.Contains(got, "Module") {
		t.Fatalf("changed = %q, want new directory reported", got)
	}

	// The new directory is watched from now on.
	testutil.MustWriteFile(t, filepath.Join(root, "Module", "Model.xafml"), "")
	got = awaitCall(t, calls)
	if !slices.Contains(got, "Module/Model.xafml") {
		t.Errorf("changed = %q, want Module/Model.xafml", got)
	}
}

func TestWatcher_RemovalAlwaysTriggers(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(root, "Module", "Model.xafml"), "")
	_, calls := startWatcher(t, Config{Root: root, Patterns: []string{"**/*.xafml"}})

	testutil.MustRemoveAll(t, filepath.Join(root, "Module"))
	got := awaitCall(t, calls)
	if len(got) == 0 {
		t.Error("removal produced an empty change set")
	}
}

func TestWatcher_RunTwice(t *testing.T) {
	t.Parallel()

	w, err := New(Config{Root: t.TempDir()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = w.fsw.Close() }()

	w.started.Store(true)
	if err := w.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run() error = %v, want ErrAlreadyRunning", err)
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Root: t.TempDir(), Patterns: []string{"[bad"}})
	if !errors.Is(err, doublestar.ErrBadPattern) {
		t.Errorf("New() error = %v, want ErrBadPattern", err)
	}
	_, err = New(Config{Root: t.TempDir(), Ignore: []string{"{unclosed"}})
	if !errors.Is(err, doublestar.ErrBadPattern) {
		t.Errorf("New() ignore error = %v, want ErrBadPattern", err)
	}
}

func TestNew_DefaultsRoot(t *testing.T) {
	t.Parallel()

	w, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = w.fsw.Close() }()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if w.Root() != wd {
		t.Errorf("Root() = %q, want %q", w.Root(), wd)
	}
}
