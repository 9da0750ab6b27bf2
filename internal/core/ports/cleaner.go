package ports

import "go.skiff.dev/baton/internal/core/domain"

// Cleaner defines the interface for a task's native remove step.
//
//go:generate go run go.uber.org/mock/mockgen -source=cleaner.go -destination=mocks/mock_cleaner.go -package=mocks
type Cleaner interface {
	// Clean deletes everything the spec names under root: files matching
	// the patterns anywhere outside version control directories, and the
	// fixed paths. Targets that are already absent are not errors.
	Clean(root string, spec *domain.RemoveSpec) error
}
