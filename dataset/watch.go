package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

var ErrNotWatchable = errors.New("dataset: source cannot be watched")

type watchable interface {
	WatchPath() string
}

// Watch reloads the store whenever the source file is written or replaced.
// Events are debounced so an editor's burst of writes triggers one reload.
// It blocks until ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	src, ok := s.src.(watchable)
	if !ok {
		return ErrNotWatchable
	}

	path, err := filepath.Abs(src.WatchPath())
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("dataset: create watcher: %w", err)
	}
	defer w.Close()

	// Watch the directory: atomic saves replace the file and drop a watch on it.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("dataset: watch %s: %w", filepath.Dir(path), err)
	}
	slog.Info("dataset watcher started", "path", path, "debounce", s.debounce)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(s.debounce, func() {
				if err := s.Load(ctx); err != nil {
					slog.Error("dataset reload failed, keeping previous snapshot", "error", err)
				}
			})

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("dataset watcher error", "error", err)
		}
	}
}
