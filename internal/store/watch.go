package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits after the last change before reloading.
const DefaultDebounce = 100 * time.Millisecond

const watchedOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Watch reloads s whenever a collection file in b's directory changes, until ctx is done.
//
// Bursts of events are coalesced into one reload. A reload that fails, such as a hand-edited file that no longer
// decodes, is logged and the previous in-memory state is kept.
func Watch(ctx context.Context, s *Store, b *FileBackend, logger *log.Logger, debounce time.Duration) error {
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(b.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", b.dir, err)
	}
	logger.Info("watching data directory", "dir", b.dir)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&watchedOps == 0 || !b.isCollectionFile(ev.Name) {
				continue
			}
			logger.Debug("collection changed", "file", ev.Name, "op", ev.Op)
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)

		case <-timer.C:
			if err := s.Load(); err != nil {
				logger.Error("reload failed, keeping previous state", "error", err)
				continue
			}
			logger.Info("reloaded collections", "dir", b.dir)
		}
	}
}

// isCollectionFile reports whether path is one of the three collection files, not a temp file.
func (b *FileBackend) isCollectionFile(path string) bool {
	base := filepath.Base(path)
	for _, name := range []string{"students", "courses", "instructors"} {
		if base == name+b.codec.Ext() {
			return true
		}
	}
	return false
}
