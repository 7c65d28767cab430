package content

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 150 * time.Millisecond

// Update is delivered by Watch after the file changes.
type Update struct {
	Content Content
	Err     error
}

// Watch reloads path whenever it is written or replaced and sends the result
// on the returned channel until ctx is done. The directory is watched rather
// than the file so editors that save via rename keep working.
func Watch(ctx context.Context, path string) (<-chan Update, error) {
	if path == "" {
		return nil, errors.New("content: watch path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("content: resolve %s: %w", path, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("content: new watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("content: watch %s: %w", filepath.Dir(abs), err)
	}
	out := make(chan Update, 1)
	go func() {
		defer close(out)
		defer watcher.Close()
		var fire <-chan time.Time
		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.NewTimer(reloadDebounce)
				fire = timer.C
			case <-fire:
				fire = nil
				c, err := Load(abs)
				select {
				case out <- Update{Content: c, Err: err}:
				case <-ctx.Done():
					return
				}
			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				select {
				case out <- Update{Err: fmt.Errorf("content: watch: %w", werr)}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
