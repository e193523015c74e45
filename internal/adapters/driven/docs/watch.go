package docs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/logger"
)

// debounceInterval coalesces change bursts: editors and sync tools
// fire several events per save, but one rebuild covers them all.
const debounceInterval = 500 * time.Millisecond

// Watch emits one signal per burst of document changes. The channel
// closes when ctx is cancelled. Returns an error when the directory
// cannot be watched; callers degrade to manual rebuilds.
func (s *DirSource) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", s.dir, err)
	}

	out := make(chan struct{}, 1)

	go func() {
		defer close(out)
		defer watcher.Close()

		var timer *time.Timer
		var timerC <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !s.relevant(event) {
					continue
				}
				// Restart the debounce window on every relevant event
				if timer == nil {
					timer = time.NewTimer(debounceInterval)
					timerC = timer.C
				} else {
					timer.Reset(debounceInterval)
				}

			case <-timerC:
				timer = nil
				timerC = nil
				select {
				case out <- struct{}{}:
				default: // signal already pending
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Document watcher: %v", err)
			}
		}
	}()

	return out, nil
}

// relevant filters events to changes that affect the document set.
// Chmod-only events are noise; files without a registered loader
// never reach the store, so their churn is ignored too.
func (s *DirSource) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) &&
		!event.Op.Has(fsnotify.Rename) {
		return false
	}
	return s.registry.Has(filepath.Ext(event.Name))
}
