package domain

// WatchTarget is one user-supplied path to watch. The kind is resolved by a
// filesystem check at startup and never changes afterwards.
type WatchTarget struct {
	// Path is normalized relative to the process working directory.
	Path  string
	IsDir bool
}

// TrackedSet is the baseline snapshot of a watch session: the directories
// tracked structurally and the files tracked by content fingerprint.
//
// The set is built once at startup and owned by a single goroutine for the
// rest of the session. Fingerprints is updated in place as changes are
// confirmed; Dirs and FileRoots are never mutated. An entry for a file
// root is never removed, so a deleted and later recreated target can
// still be compared against the content last observed.
type TrackedSet struct {
	Dirs         map[string]struct{}
	FileRoots    map[string]struct{}
	Fingerprints map[string]string
}

// NewTrackedSet returns an empty snapshot ready to be populated.
func NewTrackedSet() *TrackedSet {
	return &TrackedSet{
		Dirs:         make(map[string]struct{}),
		FileRoots:    make(map[string]struct{}),
		Fingerprints: make(map[string]string),
	}
}

// TracksDir reports whether path is one of the structurally tracked
// directories.
func (t *TrackedSet) TracksDir(path string) bool {
	_, ok := t.Dirs[path]
	return ok
}

// IsFileRoot reports whether path is a file the user named as a watch
// target directly.
func (t *TrackedSet) IsFileRoot(path string) bool {
	_, ok := t.FileRoots[path]
	return ok
}

// Fingerprint returns the last fingerprint observed for path and whether
// the path is content-tracked at all.
func (t *TrackedSet) Fingerprint(path string) (string, bool) {
	fp, ok := t.Fingerprints[path]
	return fp, ok
}

// Files returns the number of content-tracked files.
func (t *TrackedSet) Files() int {
	return len(t.Fingerprints)
}
