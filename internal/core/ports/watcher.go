package ports

import (
	"context"
	"iter"

	"go.spur.run/spur/internal/core/domain"
)

// WatchOp classifies a file system change.
type WatchOp uint8

const (
	// OpCreated indicates a file or directory appeared under a watched root.
	OpCreated WatchOp = iota
	// OpRemoved indicates a file or directory disappeared from a watched root.
	OpRemoved
	// OpModified indicates a file's content was written.
	OpModified
)

// String returns the label used in change reports.
func (op WatchOp) String() string {
	switch op {
	case OpCreated:
		return "Created"
	case OpRemoved:
		return "Removed"
	case OpModified:
		return "Modified"
	default:
		return "Unknown"
	}
}

// WatchEvent is one classified file system event.
type WatchEvent struct {
	// Path is the path of the file or directory that changed, normalized
	// relative to the process working directory.
	Path string
	// Operation is the class of change that occurred.
	Operation WatchOp
}

// Structural reports whether the event changes the shape of the watched
// tree rather than file content.
func (e WatchEvent) Structural() bool {
	return e.Operation != OpModified
}

// Watcher defines the interface for watching file system changes.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given targets. Directory targets are
	// watched recursively; ignored subtrees are never registered.
	Start(ctx context.Context, targets []domain.WatchTarget) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Events returns an iterator of classified file system events. The
	// sequence ends when the watcher is stopped, the context is canceled,
	// or the notification layer fails.
	Events() iter.Seq[WatchEvent]
	// Err returns the error that terminated the event stream, or nil
	// after a clean stop.
	Err() error
}
