package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.skiff.dev/baton/internal/adapters/fs"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.py"))
	writeFile(t, filepath.Join(root, "src", "b.py"))
	writeFile(t, filepath.Join(root, ".git", "config"))
	writeFile(t, filepath.Join(root, ".hg", "hgrc"))

	walker := fs.NewWalker()

	var files []string
	for path := range walker.WalkFiles(root, nil) {
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		files = append(files, rel)
	}

	require.Equal(t, []string{"a.py", filepath.Join("src", "b.py")}, files)
}

func TestWalker_WalkFiles_Ignores(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.py"))
	writeFile(t, filepath.Join(root, "build", "out.bin"))

	walker := fs.NewWalker()

	var files []string
	for path := range walker.WalkFiles(root, []string{"build"}) {
		files = append(files, filepath.Base(path))
	}

	require.Equal(t, []string{"a.py"}, files)
}
