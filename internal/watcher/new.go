package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/textlab/internal/logger"
)

// Options tunes a Watcher. Zero values use the defaults.
type Options struct {
	MaxConcurrent int
	// Settle is how long to wait after a create event before the file is
	// handed over, so writers can finish.
	Settle time.Duration
	Filter Filter
}

// New creates a new Watcher instance with concurrency control
func New(inputDir string, handler EventHandler, log logger.Logger, opts Options) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 2
	}
	if opts.Settle <= 0 {
		opts.Settle = 500 * time.Millisecond
	}
	if opts.Filter == nil {
		opts.Filter = func(string) bool { return true }
	}

	return &implWatcher{
		inputDir:      inputDir,
		handler:       handler,
		logger:        log,
		watcher:       watcher,
		maxConcurrent: opts.MaxConcurrent,
		settle:        opts.Settle,
		filter:        opts.Filter,
		semaphore:     make(chan struct{}, opts.MaxConcurrent),
	}, nil
}
