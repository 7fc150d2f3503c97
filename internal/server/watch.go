package server

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/Aman-CERP/postsearch/internal/debounce"
	"github.com/Aman-CERP/postsearch/internal/errors"
)

// watch reloads the index whenever its file is written, created or replaced.
// The directory is watched rather than the file so that generators that write
// a temp file and rename it over the index are picked up.
func (s *Server) watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create index watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	file := s.IndexFile()
	dir := filepath.Dir(file)
	if err := fsw.Add(dir); err != nil {
		return errors.IndexError(errors.ErrCodeIndexRead,
			fmt.Sprintf("cannot watch %s", dir), err)
	}

	d := debounce.New[string](s.opts.ReloadDelay)
	defer d.Stop()

	slog.Info("watching search index", slog.String("path", file))
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != file {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			d.Trigger(event.Op.String())

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("index watcher error", slog.String("error", err.Error()))

		case op := <-d.Output():
			if err := s.Reload(); err != nil {
				slog.Warn("index reload failed, keeping previous snapshot",
					append(errors.LogAttrs(err), slog.String("op", op))...)
			}
		}
	}
}
