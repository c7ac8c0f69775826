package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"galaxygenerator/core"
)

// reloadDelay coalesces the burst of events editors emit on save
const reloadDelay = 150 * time.Millisecond

// Watch reloads the galaxy section of path whenever the file changes and
// passes the result to onChange. It blocks until ctx is done. The parent
// directory is watched so editors that replace the file are still seen.
func Watch(ctx context.Context, path string, onChange func(core.ParameterSet)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	logger := slog.With("component", "config", "operation", "watch", "path", abs)
	logger.Debug("Watching settings for changes")

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			pending = time.After(reloadDelay)
		case <-pending:
			pending = nil
			params, err := LoadGalaxy(abs)
			if err != nil {
				logger.Warn("Ignoring unreadable settings", "error", err)
				continue
			}
			logger.Info("Settings changed, reloading galaxy")
			onChange(params)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "error", err)
		}
	}
}
