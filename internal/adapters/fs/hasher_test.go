package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.skiff.dev/baton/internal/adapters/fs"
	"go.skiff.dev/baton/internal/core/domain"
)

func newHasher() *fs.Hasher {
	return fs.NewHasher(fs.NewWalker(), fs.NewResolver())
}

func inputTask(name string, inputs ...string) *domain.Task {
	interned := make([]domain.InternedString, len(inputs))
	for i, in := range inputs {
		interned[i] = domain.NewInternedString(in)
	}
	return &domain.Task{
		Name:     domain.NewInternedString(name),
		Commands: [][]string{{"true"}},
		Inputs:   interned,
	}
}

func TestHasher_ComputeInputHash_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.py"))

	hasher := newHasher()
	task := inputTask("test", "*.py")
	env := map[string]string{"PATH": "/usr/bin", "HOME": "/home/u"}

	first, err := hasher.ComputeInputHash(task, env, root)
	require.NoError(t, err)

	second, err := hasher.ComputeInputHash(task, env, root)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Len(t, first, 16)
}

func TestHasher_ComputeInputHash_ChangesWithContent(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.py")
	writeFile(t, path)

	hasher := newHasher()
	task := inputTask("test", "*.py")

	before, err := hasher.ComputeInputHash(task, nil, root)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("changed"), 0o600))

	after, err := hasher.ComputeInputHash(task, nil, root)
	require.NoError(t, err)

	require.NotEqual(t, before, after)
}

func TestHasher_ComputeInputHash_ChangesWithEnvironment(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.py"))

	hasher := newHasher()
	task := inputTask("test", "*.py")

	first, err := hasher.ComputeInputHash(task, map[string]string{"V": "1"}, root)
	require.NoError(t, err)

	second, err := hasher.ComputeInputHash(task, map[string]string{"V": "2"}, root)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestHasher_ComputeInputHash_ChangesWithCommand(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.py"))

	hasher := newHasher()

	first, err := hasher.ComputeInputHash(inputTask("test", "*.py"), nil, root)
	require.NoError(t, err)

	changed := inputTask("test", "*.py")
	changed.Commands = [][]string{{"false"}}
	second, err := hasher.ComputeInputHash(changed, nil, root)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestHasher_ComputeInputHash_DirectoryInput(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.py"))
	writeFile(t, filepath.Join(root, "src", "sub", "b.py"))

	hasher := newHasher()
	task := inputTask("test", "src")

	digest, err := hasher.ComputeInputHash(task, nil, root)
	require.NoError(t, err)
	require.Len(t, digest, 16)
}

func TestHasher_ComputeOutputHash(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "out.bin"))

	hasher := newHasher()

	first, err := hasher.ComputeOutputHash([]string{"out.bin"}, root)
	require.NoError(t, err)

	second, err := hasher.ComputeOutputHash([]string{"out.bin"}, root)
	require.NoError(t, err)

	require.Equal(t, first, second)
}
