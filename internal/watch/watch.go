// Package watch re-runs a job whenever one of a set of files changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a burst of events must be quiet before the
// job runs. Editors usually write a file in several steps.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches files through their parent directories, so files that
// are replaced rather than rewritten are still seen.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	files    map[string]bool
	logger   *log.Logger

	Debounce time.Duration
}

// New starts watching paths.
func New(paths []string, logger *log.Logger) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsnotify: fsWatch,
		files:    make(map[string]bool),
		logger:   logger,
		Debounce: DefaultDebounce,
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsWatch.Close()
			return nil, err
		}
		w.files[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fsWatch.Add(dir); err != nil {
			fsWatch.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	return w, nil
}

// Run calls fn after every burst of changes to the watched files until ctx
// is done. Errors from fn are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context, fn func() error) error {
	timer := time.NewTimer(w.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return nil
			}
			if !w.relevant(e) {
				continue
			}
			w.logger.Debug("file changed", "path", e.Name, "op", e.Op.String())
			timer.Reset(w.Debounce)

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch", "err", err)

		case <-timer.C:
			if err := fn(); err != nil {
				w.logger.Error("rebuild failed", "err", err)
			}
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsnotify.Close()
}

func (w *Watcher) relevant(e fsnotify.Event) bool {
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) && !e.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(e.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}
