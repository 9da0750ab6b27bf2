package ports

import "go.skiff.dev/baton/internal/core/domain"

// Hasher defines the interface for computing task fingerprints.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeInputHash computes the fingerprint of a task's definition,
	// environment and declared input files.
	ComputeInputHash(task *domain.Task, env map[string]string, rootDir string) (string, error)

	// ComputeOutputHash computes the fingerprint of the given output files.
	ComputeOutputHash(outputs []string, rootDir string) (string, error)
}
