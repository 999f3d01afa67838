// Package ignore implements path exclusion based on version-control ignore
// files.
package ignore

import (
	"path/filepath"
	"strings"
	"sync"

	gitignore "github.com/sabhiram/go-gitignore"
)

// vcsDirectories are never watched or tracked, independent of ignore files.
var vcsDirectories = map[string]struct{}{
	".git": {},
	".jj":  {},
}

// Matcher applies .gitignore rules discovered in the working tree. Every
// ancestor directory of a path may carry a .gitignore whose patterns apply
// to the subtree beneath it. Missing or unreadable ignore files contribute
// no rules.
type Matcher struct {
	mu    sync.Mutex
	rules map[string]*gitignore.GitIgnore
}

// New creates a Matcher rooted at the process working directory.
func New() *Matcher {
	return &Matcher{rules: make(map[string]*gitignore.GitIgnore)}
}

// Match reports whether path is excluded. The path must be relative to the
// working directory. A path is excluded when any component is a VCS
// directory or when a .gitignore along its ancestry matches it.
//
// Directory-only patterns ("build/") are honored for paths that no longer
// exist, so removal events cannot slip past the filter: the path is probed
// both as given and with a trailing slash.
func (m *Matcher) Match(path string) bool {
	path = filepath.ToSlash(filepath.Clean(path))
	if path == "." || path == "/" {
		return false
	}

	for part := range strings.SplitSeq(path, "/") {
		if _, ok := vcsDirectories[part]; ok {
			return true
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Walk from the working directory down to the path's parent, checking
	// each level's .gitignore against the remainder of the path.
	dir := "."
	rel := path
	for {
		if rules := m.rulesFor(dir); rules != nil {
			if rules.MatchesPath(rel) || rules.MatchesPath(rel+"/") {
				return true
			}
		}

		idx := strings.IndexByte(rel, '/')
		if idx < 0 {
			return false
		}
		if dir == "." {
			dir = rel[:idx]
		} else {
			dir += "/" + rel[:idx]
		}
		rel = rel[idx+1:]
	}
}

// rulesFor returns the compiled .gitignore for dir, loading it on first
// use. The caller holds the mutex.
func (m *Matcher) rulesFor(dir string) *gitignore.GitIgnore {
	if rules, ok := m.rules[dir]; ok {
		return rules
	}

	rules, err := gitignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		// Absent or unreadable means nothing additional ignored.
		rules = nil
	}
	m.rules[dir] = rules
	return rules
}
