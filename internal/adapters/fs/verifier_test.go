package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.skiff.dev/baton/internal/adapters/fs"
)

func TestVerifier_VerifyOutputs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "out.bin"))

	verifier := fs.NewVerifier()

	ok, err := verifier.VerifyOutputs(root, []string{"out.bin"})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifier_VerifyOutputs_Missing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "out.bin"))

	verifier := fs.NewVerifier()

	ok, err := verifier.VerifyOutputs(root, []string{"out.bin", "gone.bin"})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifier_VerifyOutputs_Empty(t *testing.T) {
	verifier := fs.NewVerifier()

	ok, err := verifier.VerifyOutputs(t.TempDir(), nil)
	require.NoError(t, err)
	require.True(t, ok)
}
