package ports

import "go.skiff.dev/baton/internal/core/domain"

// ConfigLoader defines the interface for loading the task registry.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the taskfile from the given working directory and returns
	// the validated task registry.
	Load(cwd string) (*domain.Registry, error)
}
