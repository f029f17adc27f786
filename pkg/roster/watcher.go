package roster

import (
	"fmt"
	"path/filepath"
	"time"

	"gopkg.in/fsnotify.v1"
)

// Watcher reloads the store when its backing document changes on disk.
// Intended for long-lived processes; batch tools call Reload directly.
type Watcher struct {
	store    *Watchable
	notifier *fsnotify.Watcher
	debounce time.Duration
	done     chan struct{}

	// OnReload, if set, is called after every reload attempt with the
	// reload error (nil on success).
	OnReload func(error)
}

// Watchable is the minimal store surface the watcher needs.
type Watchable struct {
	Path   string
	Reload func() error
}

// Watch starts watching the store's backing file. Editors and
// atomic-rename writers produce bursts of events, so reloads are
// debounced.
func Watch(store *Store, debounce time.Duration) (*Watcher, error) {
	if store.path == "" {
		return nil, fmt.Errorf("cannot watch a store without a backing file")
	}
	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting roster watcher: %w", err)
	}
	// Watch the directory, not the file: rename-over-replace swaps the
	// inode and would silently detach a file-level watch.
	if err := notifier.Add(filepath.Dir(store.path)); err != nil {
		notifier.Close()
		return nil, fmt.Errorf("watching roster directory: %w", err)
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	watcher := &Watcher{
		store:    &Watchable{Path: store.path, Reload: store.Reload},
		notifier: notifier,
		debounce: debounce,
		done:     make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.notifier.Close()
}

func (w *Watcher) run() {
	var timer *time.Timer
	var timerC <-chan time.Time

	target := filepath.Clean(w.store.Path)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.notifier.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			err := w.store.Reload()
			if w.OnReload != nil {
				w.OnReload(err)
			}
		case _, ok := <-w.notifier.Errors:
			if !ok {
				return
			}
		}
	}
}
