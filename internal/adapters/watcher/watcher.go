// Package watcher implements file system watching for run supervision.
package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.spur.run/spur/internal/core/domain"
	"go.spur.run/spur/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 100

// Watcher implements file system watching using fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	ignorer   ports.Ignorer
	events    chan ports.WatchEvent
	err       error
}

// NewWatcher creates a new file system watcher. Directory registration is
// pruned by the given ignorer; event delivery is not filtered here.
func NewWatcher(ignorer ports.Ignorer) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrNotifierFailed.Error())
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		ignorer:   ignorer,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
	}, nil
}

// Start begins watching the given targets. Directory targets are watched
// recursively. File targets are watched through their parent directory;
// editors that save by rename-and-replace would otherwise detach the
// notification from the file after the first save.
func (w *Watcher) Start(ctx context.Context, targets []domain.WatchTarget) error {
	for _, target := range targets {
		if !target.IsDir {
			if err := w.fsWatcher.Add(filepath.Dir(target.Path)); err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrNotifierFailed.Error()), "path", target.Path)
			}
			continue
		}

		for dir := range w.directories(target.Path) {
			if err := w.fsWatcher.Add(dir); err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrNotifierFailed.Error()), "path", dir)
			}
		}
	}

	// Start processing events in a goroutine.
	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of classified file system events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// Err returns the error that terminated the event stream. It must only be
// read after the Events sequence has ended; the channel close orders the
// write before the read.
func (w *Watcher) Err() error {
	return w.err
}

// directories walks the tree below root and yields every directory that
// ignore rules do not exclude. The root itself is always yielded.
func (w *Watcher) directories(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Keep walking even when a subdirectory cannot be read.
				return nil //nolint:nilerr // Unreadable directories are skipped, not fatal.
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && w.ignorer.Match(path) {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// processEvents converts raw fsnotify events and forwards them until the
// context is canceled, the watcher is stopped or the notification layer
// reports an error.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			watchEvent := w.convertEvent(event)
			if watchEvent == nil {
				continue
			}

			select {
			case w.events <- *watchEvent:
			case <-ctx.Done():
				return
			}

			// A directory created under a watched root is not covered by
			// any existing registration yet.
			if watchEvent.Operation == ports.OpCreated {
				w.registerIfDirectory(event.Name)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.err = zerr.Wrap(err, domain.ErrNotifierFailed.Error())
			return
		}
	}
}

// registerIfDirectory adds a freshly created directory and its subtree to
// the watch set unless ignore rules exclude it.
func (w *Watcher) registerIfDirectory(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || w.ignorer.Match(path) {
		return
	}
	for dir := range w.directories(path) {
		_ = w.fsWatcher.Add(dir)
	}
}

// convertEvent maps an fsnotify event to a ports.WatchEvent. A rename is
// a removal of the old path; chmod-only events carry neither content nor
// shape changes and are dropped.
func (w *Watcher) convertEvent(event fsnotify.Event) *ports.WatchEvent {
	path := filepath.Clean(event.Name)

	if event.Op&fsnotify.Write == fsnotify.Write {
		return &ports.WatchEvent{
			Path:      path,
			Operation: ports.OpModified,
		}
	}

	if event.Op&fsnotify.Create == fsnotify.Create {
		return &ports.WatchEvent{
			Path:      path,
			Operation: ports.OpCreated,
		}
	}

	if event.Op&fsnotify.Remove == fsnotify.Remove {
		return &ports.WatchEvent{
			Path:      path,
			Operation: ports.OpRemoved,
		}
	}

	if event.Op&fsnotify.Rename == fsnotify.Rename {
		return &ports.WatchEvent{
			Path:      path,
			Operation: ports.OpRemoved,
		}
	}

	return nil
}
