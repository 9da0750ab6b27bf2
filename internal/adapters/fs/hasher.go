package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/cespare/xxhash/v2"
	"go.skiff.dev/baton/internal/core/domain"
	"go.skiff.dev/baton/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes task fingerprints with XXHash.
type Hasher struct {
	walker   *Walker
	resolver ports.InputResolver
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker, resolver ports.InputResolver) *Hasher {
	return &Hasher{walker: walker, resolver: resolver}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeInputHash computes a single fingerprint covering the task
// definition, the environment, and the content of the resolved input files.
func (h *Hasher) ComputeInputHash(task *domain.Task, env map[string]string, root string) (string, error) {
	hasher := xxhash.New()

	h.hashTaskDefinition(task, hasher)
	h.hashEnvironment(env, hasher)

	if err := h.hashInputFiles(task, root, hasher); err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// hashTaskDefinition hashes the task's name, commands, prerequisites,
// inputs and outputs, NUL-separated so field boundaries cannot collide.
func (h *Hasher) hashTaskDefinition(task *domain.Task, hasher *xxhash.Digest) {
	_, _ = hasher.WriteString(task.Name.String())
	_, _ = hasher.Write([]byte{0})

	for _, argv := range task.Commands {
		for _, arg := range argv {
			_, _ = hasher.WriteString(arg)
			_, _ = hasher.Write([]byte{0})
		}
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})

	for _, dep := range task.Dependencies {
		_, _ = hasher.WriteString(dep.String())
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})

	for _, input := range task.Inputs {
		_, _ = hasher.WriteString(input.String())
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})

	for _, output := range task.Outputs {
		_, _ = hasher.WriteString(output.String())
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}

// hashEnvironment hashes environment variables in a deterministic order.
func (h *Hasher) hashEnvironment(env map[string]string, hasher *xxhash.Digest) {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		_, _ = hasher.WriteString(k)
		_, _ = hasher.Write([]byte{'='})
		_, _ = hasher.WriteString(env[k])
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}

// hashInputFiles resolves the declared inputs and hashes each resolved path.
// Per-path digests are computed concurrently, then combined in resolved
// order so the fingerprint stays deterministic.
func (h *Hasher) hashInputFiles(task *domain.Task, root string, hasher *xxhash.Digest) error {
	if len(task.Inputs) == 0 {
		return nil
	}

	inputs := make([]string, len(task.Inputs))
	for i, input := range task.Inputs {
		inputs[i] = input.String()
	}

	paths, err := h.resolver.ResolveInputs(inputs, root)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve inputs")
	}

	digests := make([]uint64, len(paths))
	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			digest, err := h.hashPath(path)
			if err != nil {
				return err
			}
			digests[i] = digest
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, path := range paths {
		_, _ = hasher.WriteString(path)
		_, _ = hasher.Write([]byte{0})
		if err := binary.Write(hasher, binary.LittleEndian, digests[i]); err != nil {
			return zerr.Wrap(err, "failed to write hash to digest")
		}
	}

	return nil
}

// hashPath computes a digest for one resolved path, descending into
// directories.
func (h *Hasher) hashPath(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}

	if !info.IsDir() {
		return h.ComputeFileHash(path)
	}

	hasher := xxhash.New()
	for filePath := range h.walker.WalkFiles(path, nil) {
		_, _ = hasher.WriteString(filePath)
		_, _ = hasher.Write([]byte{0})

		fileHash, err := h.ComputeFileHash(filePath)
		if err != nil {
			return 0, err
		}
		if err := binary.Write(hasher, binary.LittleEndian, fileHash); err != nil {
			return 0, zerr.Wrap(err, "failed to write hash to digest")
		}
	}
	return hasher.Sum64(), nil
}

// ComputeOutputHash computes the fingerprint of the given output files.
func (h *Hasher) ComputeOutputHash(outputs []string, root string) (string, error) {
	sortedOutputs := make([]string, len(outputs))
	copy(sortedOutputs, outputs)
	sort.Strings(sortedOutputs)

	hasher := xxhash.New()

	for _, output := range sortedOutputs {
		path := filepath.Join(root, output)

		hash, err := h.hashPath(path)
		if err != nil {
			return "", err
		}

		_, _ = hasher.WriteString(output)
		_, _ = hasher.Write([]byte{0})
		if err := binary.Write(hasher, binary.LittleEndian, hash); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
