// FILE: lixenwraith/recorder/mask/watch.go
package mask

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces bursts of events produced by editors and atomic renames
const reloadDebounce = 100 * time.Millisecond

// Watch reloads the YAML file at path whenever it changes and passes the parsed rules to apply.
// It blocks until ctx is cancelled. A file that fails to parse is not applied; the error is
// passed to onError instead.
func Watch(ctx context.Context, path string, apply func([]Rule), onError func(error)) error {
	if apply == nil {
		return fmt.Errorf("mask: watch requires an apply function")
	}
	if onError == nil {
		onError = func(error) {}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("mask: create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so replace-by-rename keeps being observed
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("mask: resolve rules path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("mask: watch %s: %w", filepath.Dir(abs), err)
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("mask: watcher events channel closed")
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			rules, err := LoadFile(abs)
			if err != nil {
				onError(err)
				continue
			}
			apply(rules)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("mask: watcher errors channel closed")
			}
			onError(fmt.Errorf("mask: watcher: %w", err))
		}
	}
}
