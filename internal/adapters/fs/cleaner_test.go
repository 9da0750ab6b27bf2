package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.skiff.dev/baton/internal/adapters/fs"
	"go.skiff.dev/baton/internal/core/domain"
	"go.skiff.dev/baton/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newCleaner(t *testing.T) *fs.Cleaner {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	return fs.NewCleaner(fs.NewWalker(), mockLogger)
}

func TestCleaner_Clean_Patterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.pyc"))
	writeFile(t, filepath.Join(root, "src", "b.pyc"))
	writeFile(t, filepath.Join(root, "src", "keep.py"))
	writeFile(t, filepath.Join(root, ".git", "cache.pyc"))

	cleaner := newCleaner(t)

	err := cleaner.Clean(root, &domain.RemoveSpec{Patterns: []string{"*.pyc"}})
	require.NoError(t, err)

	require.NoFileExists(t, filepath.Join(root, "a.pyc"))
	require.NoFileExists(t, filepath.Join(root, "src", "b.pyc"))
	require.FileExists(t, filepath.Join(root, "src", "keep.py"))
	// Version control directories are never entered.
	require.FileExists(t, filepath.Join(root, ".git", "cache.pyc"))
}

func TestCleaner_Clean_Paths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "docs", "_build", "index.html"))

	cleaner := newCleaner(t)

	err := cleaner.Clean(root, &domain.RemoveSpec{
		Paths: []string{filepath.Join("docs", "_build"), "absent-dir"},
	})
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(root, "docs", "_build"))
	require.True(t, os.IsNotExist(statErr))
}

func TestCleaner_Clean_NilSpec(t *testing.T) {
	cleaner := newCleaner(t)
	require.NoError(t, cleaner.Clean(t.TempDir(), nil))
}
