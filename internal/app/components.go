package app

import (
	"go.skiff.dev/baton/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.skiff.dev/baton/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App          *App
	Logger       ports.Logger
	ConfigLoader *config.Loader
}
