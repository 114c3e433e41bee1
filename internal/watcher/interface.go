package watcher

import "context"

// Watcher monitors the presentation file and re-runs the conversion
// when it changes.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler runs one conversion. Invocations are strictly
// sequential; a change arriving mid-conversion waits for the next
// debounce window.
type EventHandler func(ctx context.Context) error
