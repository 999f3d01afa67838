package watch

import (
	"errors"
	"os"
	"strings"

	"go.spur.run/spur/internal/core/domain"
	"go.spur.run/spur/internal/core/ports"
)

// Session holds the snapshot and relevance policy of one watch run. All
// methods mutate the tracked set from the single event-processing
// goroutine; Session itself carries no mutable state.
type Session struct {
	walker  ports.Walker
	hasher  ports.Hasher
	ignorer ports.Ignorer
}

// NewSession creates a new Session.
func NewSession(walker ports.Walker, hasher ports.Hasher, ignorer ports.Ignorer) *Session {
	return &Session{walker: walker, hasher: hasher, ignorer: ignorer}
}

// Snapshot builds the baseline for the given targets: directory targets
// are tracked structurally and every contained file that survives ignore
// rules is fingerprinted; file targets are fingerprinted directly, even
// when ignore rules would cover them, because the user named them
// explicitly.
func (s *Session) Snapshot(targets []domain.WatchTarget) (*domain.TrackedSet, error) {
	tracked := domain.NewTrackedSet()

	for _, target := range targets {
		if !target.IsDir {
			digest, err := s.hasher.HashFile(target.Path)
			if err != nil {
				return nil, err
			}
			tracked.FileRoots[target.Path] = struct{}{}
			tracked.Fingerprints[target.Path] = digest
			continue
		}

		tracked.Dirs[target.Path] = struct{}{}
		if err := s.fingerprintTree(target.Path, tracked); err != nil {
			return nil, err
		}
	}

	return tracked, nil
}

// Evaluate decides whether event warrants a restart and keeps the tracked
// set current while doing so. Structural events qualify only for unknown,
// unignored paths below a tracked directory; events on fingerprinted
// files qualify only when the content genuinely changed.
func (s *Session) Evaluate(event ports.WatchEvent, tracked *domain.TrackedSet) bool {
	if event.Structural() {
		return s.evaluateStructural(event, tracked)
	}
	return s.evaluateContent(event.Path, tracked)
}

func (s *Session) evaluateStructural(event ports.WatchEvent, tracked *domain.TrackedSet) bool {
	path := event.Path

	// The watch roots themselves never trigger; changes inside them do.
	if tracked.TracksDir(path) {
		return false
	}

	if _, contentTracked := tracked.Fingerprint(path); contentTracked {
		if event.Operation == ports.OpRemoved {
			// File roots stay pinned so a later recreation can still be
			// compared against the content last observed.
			if !tracked.IsFileRoot(path) {
				forget(tracked, path)
			}
			return false
		}
		// Recreation of a tracked file, as editors do when they save by
		// rename-and-replace. Only confirmed new content restarts.
		return s.evaluateContent(path, tracked)
	}

	if event.Operation == ports.OpRemoved {
		forget(tracked, path)
	}

	if s.ignorer.Match(path) {
		return false
	}
	if !underTrackedDir(tracked, path) {
		return false
	}

	if event.Operation == ports.OpCreated {
		s.adopt(path, tracked)
	}
	return true
}

func (s *Session) evaluateContent(path string, tracked *domain.TrackedSet) bool {
	previous, ok := tracked.Fingerprint(path)
	if !ok {
		return false
	}

	digest, err := s.hasher.HashFile(path)
	if err != nil {
		// Gone between the event and the probe; the removal event that
		// follows does the bookkeeping.
		return false
	}
	if digest == previous {
		return false
	}

	tracked.Fingerprints[path] = digest
	return true
}

// adopt starts content-tracking a path that appeared during the session,
// so later writes to it are confirmed against a baseline. Best effort: a
// path that cannot be probed right now is picked up again by its next
// event.
func (s *Session) adopt(path string, tracked *domain.TrackedSet) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}

	if info.IsDir() {
		_ = s.fingerprintTree(path, tracked)
		return
	}

	digest, err := s.hasher.HashFile(path)
	if err != nil {
		return
	}
	tracked.Fingerprints[path] = digest
}

// fingerprintTree hashes every file the walker yields under root into the
// tracked set. Files that vanish between enumeration and hashing are
// skipped.
func (s *Session) fingerprintTree(root string, tracked *domain.TrackedSet) error {
	for path, err := range s.walker.WalkFiles(root) {
		if err != nil {
			return err
		}

		digest, err := s.hasher.HashFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		tracked.Fingerprints[path] = digest
	}
	return nil
}

// forget drops the fingerprints of path and everything beneath it.
func forget(tracked *domain.TrackedSet, path string) {
	delete(tracked.Fingerprints, path)

	prefix := path + "/"
	for trackedPath := range tracked.Fingerprints {
		if strings.HasPrefix(trackedPath, prefix) {
			delete(tracked.Fingerprints, trackedPath)
		}
	}
}

// underTrackedDir reports whether path lies below one of the tracked
// directory roots.
func underTrackedDir(tracked *domain.TrackedSet, path string) bool {
	for root := range tracked.Dirs {
		if root == "." {
			// The working directory covers every relative path.
			return true
		}
		if strings.HasPrefix(path, root+"/") {
			return true
		}
	}
	return false
}
