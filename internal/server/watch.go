package server

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/klauern/skillshelf/internal/logging"
)

// reloadDebounce coalesces bursts of file events (editors write several
// times per save) into one reload.
const reloadDebounce = 250 * time.Millisecond

// watch reloads the bundle when files under its root change. The returned
// stop function closes the watcher.
func (s *Server) watch(ctx context.Context) (func(), error) {
	bun, _ := s.snapshot()
	root := bun.Root

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// fsnotify watches are not recursive; register every directory.
	if err := addDirs(watcher, root); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	go func() {
		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = addDirs(watcher, event.Name)
					}
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, func() {
					if err := s.Reload(root); err != nil {
						logging.Error("reload after change failed", logging.Bundle(root), logging.Err(err))
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Warn("watcher error", logging.Err(err))
			}
		}
	}()

	return func() { _ = watcher.Close() }, nil
}

func addDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				logging.Debug("cannot watch directory", logging.Path(path), logging.Err(err))
			}
		}
		return nil
	})
}
