package session

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reports external changes to the campaign file at path by calling
// onChange. The parent directory is watched because saves replace the file by
// rename. Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, logger *slog.Logger, onChange func()) error {
	if logger == nil {
		logger = slog.Default()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	logger.Info("watching campaign file", "path", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("campaign watcher error", "error", err)
		}
	}
}

// ReloadOnChange returns a Watch callback that reloads m and hands changed
// campaigns to notify
func ReloadOnChange(m *Manager, logger *slog.Logger, notify func()) func() {
	if logger == nil {
		logger = slog.Default()
	}
	return func() {
		changed, err := m.Reload()
		if err != nil {
			logger.Warn("ignoring external campaign edit", "error", err)
			return
		}
		if changed && notify != nil {
			notify()
		}
	}
}
