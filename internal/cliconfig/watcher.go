package cliconfig

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces the bursts of events editors emit on save.
const debounceWindow = 500 * time.Millisecond

// Watcher monitors the config file via fsnotify and signals each change
// on C. Interval mode picks the signal up between runs and reloads the
// configuration before the next batch.
type Watcher struct {
	C chan struct{}

	path string

	mu       sync.Mutex
	debounce *time.Timer
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(path string) *Watcher {
	return &Watcher{
		C:    make(chan struct{}, 1),
		path: path,
	}
}

// Run watches the config file's directory until ctx is canceled. Errors
// creating the watcher are returned immediately; watch events for other
// files in the directory are ignored.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.signal()

		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}

// signal schedules a debounced notification on C.
func (w *Watcher) signal() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceWindow, func() {
		select {
		case w.C <- struct{}{}:
		default:
		}
	})
}
