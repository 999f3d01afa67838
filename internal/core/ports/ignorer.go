package ports

// Ignorer decides whether a path is excluded from watch consideration.
type Ignorer interface {
	// Match reports whether path is excluded by ignore-file rules. Rules
	// are matched against the path and its ancestor directories, the same
	// way version-control ignore files apply.
	Match(path string) bool
}
