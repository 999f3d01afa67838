package ignore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.spur.run/spur/internal/adapters/ignore"
)

// setupTree creates a working directory with nested .gitignore files and
// chdirs into it.
func setupTree(t *testing.T) {
	t.Helper()

	tmp := t.TempDir()
	t.Chdir(tmp)

	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "sub"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "build"), 0o755))

	root := "*.log\n!keep.log\nbuild/\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".gitignore"), []byte(root), 0o644))

	sub := "secret.txt\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "sub", ".gitignore"), []byte(sub), 0o644))
}

func TestMatcher_Match(t *testing.T) {
	setupTree(t)
	m := ignore.New()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "pattern at root", path: "app.log", want: true},
		{name: "pattern applies in subdirectory", path: "sub/nested.log", want: true},
		{name: "negated pattern", path: "keep.log", want: false},
		{name: "directory pattern matches content", path: "build/out.txt", want: true},
		{name: "directory pattern matches directory itself", path: "build", want: true},
		{name: "unmatched file", path: "main.go", want: false},
		{name: "nested ignore file", path: "sub/secret.txt", want: true},
		{name: "nested ignore file scoped to its directory", path: "other/secret.txt", want: false},
		{name: "unmatched file in subdirectory", path: "sub/other.txt", want: false},
		{name: "git directory", path: ".git/config", want: true},
		{name: "jj directory", path: ".jj/store", want: true},
		{name: "git directory nested", path: "sub/.git/HEAD", want: true},
		{name: "working directory itself", path: ".", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, m.Match(tt.path), "path %q", tt.path)
		})
	}
}

func TestMatcher_NoIgnoreFiles(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)

	m := ignore.New()

	require.False(t, m.Match("anything.txt"))
	require.False(t, m.Match("deep/path/file.go"))
	require.True(t, m.Match(".git/config"), "VCS directories are excluded without ignore files")
}

func TestMatcher_RemovedPath(t *testing.T) {
	// Rules still apply to paths that no longer exist on disk.
	setupTree(t)
	m := ignore.New()

	require.True(t, m.Match("gone.log"))
	require.True(t, m.Match("build/removed.txt"))
	require.False(t, m.Match("gone.txt"))
}
