package ports

import "iter"

// Hasher computes content fingerprints for files.
type Hasher interface {
	// HashFile returns the fingerprint of the file at path. Equal content
	// yields equal fingerprints; different content yields different
	// fingerprints with overwhelming probability.
	HashFile(path string) (string, error)
}

// Walker enumerates the files beneath a directory.
type Walker interface {
	// WalkFiles yields every regular file under root that ignore rules do
	// not exclude. A traversal failure is yielded as the final pair and
	// ends the sequence.
	WalkFiles(root string) iter.Seq2[string, error]
}
