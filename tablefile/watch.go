package tablefile

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nanahuse/constmapper"
	"github.com/nanahuse/constmapper/retry"
	"github.com/nanahuse/constmapper/tlog"
	"github.com/ridge/must/v2"
	"go.uber.org/zap"
)

// ReloadRetry defines the attempts to load a changed table document. Writers
// tend to truncate a file before writing it, so the first attempt may see an
// incomplete document.
var ReloadRetry retry.Config = retry.ExpConfig{
	Min:         20 * time.Millisecond,
	Max:         500 * time.Millisecond,
	Scale:       2,
	MaxAttempts: 5,
}

// Watch loads the table document at path and passes the table to fn, then
// does it again every time the file is written or replaced. A document that
// fails to load is logged and skipped, and the previous table stays in use.
//
// Watch returns when the context is closed, when fn returns an error, or when
// the initial load fails.
func Watch(ctx context.Context, path string, fn func(*constmapper.Mapper[any]) error, opts ...constmapper.Option) error {
	path = filepath.Clean(path)
	logger := tlog.Get(ctx).With(zap.String("path", path))

	// Watch the directory, as editors tend to replace files instead of
	// writing them in place
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer must.Do(w.Close)
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}

	m, err := LoadFile(path, opts...)
	if err != nil {
		return err
	}
	if err := fn(m); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.Events:
			if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			m, err := retry.Do1(ctx, ReloadRetry, func() (*constmapper.Mapper[any], error) {
				m, err := LoadFile(path, opts...)
				return m, retry.Retriable(err)
			})
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err != nil {
				logger.Warn("Failed to reload table, keeping the previous one", zap.Error(err))
				continue
			}
			logger.Info("Table reloaded", zap.Int("rows", m.Len()))
			if err := fn(m); err != nil {
				return err
			}
		case err := <-w.Errors:
			return err
		}
	}
}
