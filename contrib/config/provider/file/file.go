// Package file is a config.Source backed by a single YAML file on disk,
// with an fsnotify-driven watch that picks up writes (including the
// truncate-then-rewrite and rename-into-place patterns common editors and
// deploy tools use).
package file

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/omalloc/prox/contrib/config"
	"github.com/omalloc/prox/contrib/log"
)

var _ config.Source = (*source)(nil)

type source struct {
	path string
}

// NewSource builds a file-backed config.Source reading path as YAML.
func NewSource(path string) config.Source {
	return &source{path: path}
}

// Load implements config.Source.
func (s *source) Load() ([]*config.KeyValue, error) {
	buf, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	return []*config.KeyValue{
		{Key: filepath.Base(s.path), Value: buf, Format: "yaml"},
	}, nil
}

// Watch implements config.Source, returning an fsnotify-backed Watcher.
func (s *source) Watch() (config.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the containing directory rather than the file itself: editors
	// and deploy tools commonly replace a config file via rename, which
	// fsnotify can't follow on a watch held on the old inode.
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		_ = w.Close()
		return nil, err
	}
	return &fileWatcher{source: s, fsw: w}, nil
}

type fileWatcher struct {
	source *source
	fsw    *fsnotify.Watcher
}

// Next implements config.Watcher.
func (w *fileWatcher) Next() ([]*config.KeyValue, error) {
	name := filepath.Base(w.source.path)

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil, os.ErrClosed
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			return w.source.Load()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil, os.ErrClosed
			}
			log.Warnf("config: fsnotify watch error: %v", err)
		}
	}
}

// Stop implements config.Watcher.
func (w *fileWatcher) Stop() error {
	return w.fsw.Close()
}
