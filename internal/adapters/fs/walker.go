package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"go.spur.run/spur/internal/core/domain"
	"go.spur.run/spur/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Walker = (*Walker)(nil)

// Walker provides file walking functionality.
type Walker struct {
	ignorer ports.Ignorer
}

// NewWalker creates a new Walker that prunes ignored paths.
func NewWalker(ignorer ports.Ignorer) *Walker {
	return &Walker{ignorer: ignorer}
}

// WalkFiles yields every regular file under root. Entries matching ignore
// rules are skipped and ignored directories are pruned from the traversal;
// the root itself is not matched against the rules. A traversal failure
// ends the sequence with a non-nil error.
func (w *Walker) WalkFiles(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if path != root && w.ignorer.Match(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Skip directories and irregular entries, yield files.
			if !d.Type().IsRegular() {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}

			return nil
		})
		if walkErr != nil {
			yield("", zerr.With(zerr.Wrap(walkErr, domain.ErrWalkFailed.Error()), "root", root))
		}
	}
}
