package ports

import "go.skiff.dev/baton/internal/core/domain"

// RunInfoStore defines the interface for storing and retrieving run fingerprints.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RunInfoStore interface {
	// Get retrieves the run info for a given task name.
	// Returns nil, nil if not found.
	Get(taskName string) (*domain.RunInfo, error)

	// Put stores the run info.
	Put(info domain.RunInfo) error
}
