package ports

import (
	"context"
	"iter"
)

// WatchOp classifies a file system change.
type WatchOp int

const (
	// OpWrite indicates a file was modified.
	OpWrite WatchOp = iota
	// OpCreate indicates a file or directory was created.
	OpCreate
	// OpRemove indicates a file or directory was removed.
	OpRemove
	// OpRename indicates a file or directory was renamed.
	OpRename
)

// WatchEvent is a single file system change under the watched root.
type WatchEvent struct {
	Path      string
	Operation WatchOp
}

// Watcher defines the interface for recursive file system watching.
//
//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given root directory recursively.
	Start(ctx context.Context, root string) error

	// Stop stops the watcher and releases all resources.
	Stop() error

	// Events returns an iterator of file system events. The iterator ends
	// when the watcher stops or its context is cancelled.
	Events() iter.Seq[WatchEvent]
}
