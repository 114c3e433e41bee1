package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/slidecast/internal/logger"
)

type implWatcher struct {
	target   string
	debounce time.Duration
	handler  EventHandler
	logger   logger.Logger
	watcher  *fsnotify.Watcher
}

// New creates a Watcher for a single file. The containing directory is
// watched, because editors typically replace the file rather than write
// it in place.
func New(target string, debounce time.Duration, handler EventHandler, log logger.Logger) (Watcher, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("resolve watch target: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch directory %s: %w", filepath.Dir(abs), err)
	}

	return &implWatcher{
		target:   abs,
		debounce: debounce,
		handler:  handler,
		logger:   log,
		watcher:  fsw,
	}, nil
}
