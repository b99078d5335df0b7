package watcher

import "context"

// Watcher hands new files in a folder to an EventHandler.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one newly created file.
type EventHandler func(ctx context.Context, filePath string) error

// Filter selects the files a Watcher reacts to.
type Filter func(path string) bool
