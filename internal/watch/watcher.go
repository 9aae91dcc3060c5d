package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces bursts of filesystem events (an agent rewriting
// several records in quick succession) into a single refresh.
const debounceWindow = 250 * time.Millisecond

// Watcher emits a refresh signal when anything under the status root
// changes, so the dashboard repaints as soon as an agent reports rather
// than at the next tick.
//
// It watches the root and its immediate namespace directories; fsnotify is
// not recursive, so newly created namespace directories are added as their
// create events arrive. The watcher is strictly an accelerator: if it fails
// or misses an event, the loop's ticker still refreshes the board.
type Watcher struct {
	root   string
	logger *slog.Logger
	events chan struct{}
}

// NewWatcher creates a watcher for the status directory at root.
func NewWatcher(root string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		root:   root,
		logger: logger,
		events: make(chan struct{}, 1),
	}
}

// Events returns the refresh channel. It is closed when the watcher stops.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Start begins watching in a background goroutine until ctx is cancelled.
//
// The status root must exist before Start is called; the caller creates it
// as part of resolving configuration.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new fs watcher: %w", err)
	}

	if err := fsw.Add(w.root); err != nil {
		fsw.Close()
		return fmt.Errorf("watch %s: %w", w.root, err)
	}
	entries, err := os.ReadDir(w.root)
	if err == nil {
		for _, ent := range entries {
			if ent.IsDir() {
				_ = fsw.Add(filepath.Join(w.root, ent.Name()))
			}
		}
	}

	go func() {
		defer func() {
			_ = fsw.Close()
			close(w.events)
		}()

		var timerC <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				// A new namespace directory needs its own watch.
				if ev.Op&fsnotify.Create != 0 {
					if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
						_ = fsw.Add(ev.Name)
					}
				}
				if timerC == nil {
					timerC = time.After(debounceWindow)
				}
			case <-timerC:
				timerC = nil
				select {
				case w.events <- struct{}{}:
				default:
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				w.logger.Warn("fs watcher error", "error", err)
			}
		}
	}()
	return nil
}
