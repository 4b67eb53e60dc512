package rst

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/a11ygl/a11ygl/loader"
)

// debounceDelay batches the burst of events an editor save produces
// into one rebuild.
const debounceDelay = 500 * time.Millisecond

// Watch rebuilds whenever a corpus source file changes. It blocks
// until the context is canceled. A rebuild failure is logged and
// watching continues.
func Watch(ctx context.Context, basedir string, logger *slog.Logger, rebuild func() error) error {
	if logger == nil {
		logger = slog.Default()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	src := loader.NewSrcPaths(basedir)
	for _, dir := range []string{src.Guidelines, src.Checks, src.Faq, filepath.Dir(src.WcagSc)} {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	var timer *time.Timer
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove) {
				continue
			}
			if !sourceFile(event.Name) {
				continue
			}
			logger.Debug("source changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
			} else {
				timer.Reset(debounceDelay)
			}
			pending = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		case <-pending:
			pending = nil
			logger.Info("rebuilding")
			if err := rebuild(); err != nil {
				logger.Error("rebuild failed", "error", err)
			}
		}
	}
}

func sourceFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
