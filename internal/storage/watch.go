package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrNotWatchable is returned by Watch for backends without an on-disk
// location.
var ErrNotWatchable = errors.New("storage: backend cannot be watched")

// Watchable is implemented by backends that live on the filesystem.
type Watchable interface {
	WatchPaths(key string) (dir string, files []string)
}

// Throttle is the quiet period Watch waits for before signalling, so one
// save that touches several files is reported once.
const Throttle = 100 * time.Millisecond

// Watch signals on the returned channel whenever another writer changes the
// document on disk. Changes that leave the document as this Document last
// wrote it are not reported. Signals are coalesced; a slow reader sees at
// most one pending signal. The channel closes when ctx is done or the
// watcher fails.
func (d *Document) Watch(ctx context.Context) (<-chan struct{}, error) {
	w, ok := d.backend.(Watchable)
	if !ok {
		return nil, ErrNotWatchable
	}
	dir, files := w.WatchPaths(d.key)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("storage: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				d.logger.Printf("storage: watcher close: %v", err)
			}
		})
	}
	if err := watcher.Add(dir); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("storage: watch %s: %w", dir, err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer closeWatcher()

		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				d.logger.Printf("storage: watcher: %v", err)
				if fire == nil {
					fire = time.After(Throttle)
				}
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !slices.Contains(files, filepath.Base(evt.Name)) {
					continue
				}
				if fire == nil {
					fire = time.After(Throttle)
				}
			case <-fire:
				fire = nil
				if d.OwnContent() {
					continue
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out, nil
}
