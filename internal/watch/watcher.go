// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/xafmodel/xafmodel/internal/logsink"
)

// DefaultDebounce is the quiet period used when Config.Debounce is not set.
const DefaultDebounce = 300 * time.Millisecond

// ErrAlreadyRunning is returned by a second call to Run.
var ErrAlreadyRunning = errors.New("watch: Run called more than once")

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Root is the directory watched recursively. Empty means the working
		// directory.
		Root string
		// Patterns select the files whose changes trigger OnChange, as
		// doublestar globs relative to Root. Removals and renames always
		// trigger, since a removed directory may have held matching files.
		Patterns []string
		// Ignore adds patterns to the built-in ignore list.
		Ignore []string
		// Debounce is the quiet period after the last event.
		Debounce time.Duration
		// ClearScreen writes an ANSI clear sequence to Screen before each
		// callback.
		ClearScreen bool
		Screen      io.Writer
		// OnChange receives the sorted, de-duplicated relative paths.
		OnChange func(ctx context.Context, changed []string) error
		// Log receives non-fatal watcher diagnostics.
		Log logsink.Sink
	}

	// Watcher dispatches debounced OnChange callbacks. Run may be called
	// once.
	Watcher struct {
		cfg     Config
		root    string
		filter  filter
		fsw     *fsnotify.Watcher
		started atomic.Bool

		mu      sync.Mutex
		pending map[string]struct{}
		timer   *time.Timer
		busy    atomic.Bool
	}
)

// New validates cfg and registers every non-ignored directory under Root.
func New(cfg Config) (*Watcher, error) {
	root := cfg.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		root = wd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve root: %w", err)
	}

	f, err := newFilter(cfg.Patterns, cfg.Ignore)
	if err != nil {
		return nil, err
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Log == nil {
		cfg.Log = logsink.Discard
	}
	if cfg.Screen == nil {
		cfg.Screen = os.Stdout
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:     cfg,
		root:    root,
		filter:  f,
		fsw:     fsw,
		pending: make(map[string]struct{}),
	}
	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Root returns the absolute watched directory.
func (w *Watcher) Root() string { return w.root }

// Run processes events until ctx is done. It returns nil on cancellation
// and an error when the underlying watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer w.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: event channel closed")
			}
			w.handle(ctx, evt)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: error channel closed")
			}
			if isFatal(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			logsink.Printf(w.cfg.Log, "watch: %v", err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, evt fsnotify.Event) {
	rel, err := filepath.Rel(w.root, evt.Name)
	if err != nil {
		rel = evt.Name
	}
	if w.filter.ignored(rel) {
		return
	}

	if evt.Has(fsnotify.Create) {
		if info, statErr := os.Stat(evt.Name); statErr == nil && info.IsDir() {
			// Files created together with the directory raced the watch
			// registration; treat the directory itself as changed.
			if addErr := w.addTree(evt.Name); addErr != nil {
				logsink.Printf(w.cfg.Log, "%v", addErr)
			}
			w.schedule(ctx, filepath.ToSlash(rel))
			return
		}
	}

	gone := evt.Has(fsnotify.Remove) || evt.Has(fsnotify.Rename)
	if !gone && !w.filter.selected(rel) {
		return
	}
	w.schedule(ctx, filepath.ToSlash(rel))
}

// schedule records rel and (re)starts the debounce timer.
func (w *Watcher) schedule(ctx context.Context, rel string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[rel] = struct{}{}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.cfg.Debounce, func() { w.fire(ctx) })
		return
	}
	w.timer.Reset(w.cfg.Debounce)
}

func (w *Watcher) fire(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if !w.busy.CompareAndSwap(false, true) {
		// A callback is still running; try again after another quiet
		// period so the pending paths are not lost.
		w.mu.Lock()
		w.timer.Reset(w.cfg.Debounce)
		w.mu.Unlock()
		return
	}
	defer w.busy.Store(false)

	w.mu.Lock()
	changed := slices.Collect(maps.Keys(w.pending))
	clear(w.pending)
	w.mu.Unlock()
	if len(changed) == 0 {
		return
	}
	sort.Strings(changed)

	if w.cfg.ClearScreen {
		fmt.Fprint(w.cfg.Screen, "\033[2J\033[H")
	}
	if w.cfg.OnChange == nil {
		return
	}
	if err := w.cfg.OnChange(ctx, changed); err != nil {
		logsink.Printf(w.cfg.Log, "watch: refresh failed: %v", err)
	}
}

func (w *Watcher) stop() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	if err := w.fsw.Close(); err != nil {
		logsink.Printf(w.cfg.Log, "watch: close: %v", err)
	}
}

// addTree registers dir and its non-ignored subdirectories. Unreadable
// directories are logged and skipped.
func (w *Watcher) addTree(dir string) error {
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			logsink.Printf(w.cfg.Log, "watch: skipping %s: %v", path, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if rel, relErr := filepath.Rel(w.root, path); relErr == nil && rel != "." && w.filter.ignored(rel) {
			return filepath.SkipDir
		}
		if addErr := w.fsw.Add(path); addErr != nil {
			return fmt.Errorf("watch: add %s: %w", path, addErr)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: register %s: %w", dir, err)
	}
	return nil
}
