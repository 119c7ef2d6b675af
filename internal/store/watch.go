package store

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of file events (editors often write a
// file several times in quick succession) into a single change callback.
const DefaultDebounce = 250 * time.Millisecond

// Watch blocks and invokes onChange whenever fragment files under the
// unreleased directory are created, written, renamed, or removed. Events are
// debounced by the given interval (DefaultDebounce when zero). Watch returns
// nil when the context is cancelled.
func (s *Store) Watch(ctx context.Context, debounce time.Duration, onChange func()) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.UnreleasedDir()); err != nil {
		return fmt.Errorf("watching %s: %w", s.UnreleasedDir(), err)
	}

	// The timer starts drained; it is armed on the first relevant event.
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isFragmentFile(filepath.Base(event.Name)) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching fragments: %w", err)
		case <-timer.C:
			onChange()
		}
	}
}
