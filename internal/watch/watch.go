// Package watch invalidates cached dataset objects when files under a local
// dataset directory change.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"gastos/internal/log"
	"gastos/internal/metrics"
	"gastos/internal/source"
	"gastos/internal/source/dir"
)

// Invalidator drops a cached object by name.
type Invalidator interface {
	Invalidate(name string)
}

// Watch starts watching src's root and its detail subdirectory. Every write,
// create, remove or rename of a .json file invalidates the matching object.
// Call the returned stop function to clean up.
func Watch(src *dir.Source, inv Invalidator, logger *log.Logger) (stop func(), err error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentWatcher)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("dataset watcher: %w", err)
	}
	if err := w.Add(src.Root()); err != nil {
		w.Close()
		return nil, fmt.Errorf("dataset watcher add %s: %w", src.Root(), err)
	}
	details := filepath.Join(src.Root(), source.DetailDir)
	if info, err := os.Stat(details); err == nil && info.IsDir() {
		if err := w.Add(details); err != nil {
			w.Close()
			return nil, fmt.Errorf("dataset watcher add %s: %w", details, err)
		}
	}

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				handle(w, src, inv, logger, details, ev)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("Dataset watcher error", log.FieldError, err)
			case <-done:
				return
			}
		}
	}()

	logger.Info("Watching dataset directory", log.FieldSource, src.Describe())
	return func() { close(done) }, nil
}

func handle(w *fsnotify.Watcher, src *dir.Source, inv Invalidator, logger *log.Logger, details string, ev fsnotify.Event) {
	// The pipeline may publish the detail directory after startup.
	if ev.Has(fsnotify.Create) && filepath.Clean(ev.Name) == details {
		if err := w.Add(details); err != nil {
			logger.Warn("Dataset watcher add failed", log.FieldError, err)
		}
		return
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}
	if !strings.EqualFold(filepath.Ext(ev.Name), ".json") {
		return
	}
	name, ok := src.Name(ev.Name)
	if !ok {
		return
	}
	inv.Invalidate(name)
	metrics.CacheInvalidations.WithLabelValues("watch").Inc()
	logger.Debug("Dataset object changed",
		log.FieldResource, name, log.FieldOperation, log.OpInvalidate, "event", ev.Op.String())
}
