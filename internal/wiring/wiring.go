// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.skiff.dev/baton/internal/adapters/config"
	_ "go.skiff.dev/baton/internal/adapters/fs"
	_ "go.skiff.dev/baton/internal/adapters/logger"
	_ "go.skiff.dev/baton/internal/adapters/shell"
	_ "go.skiff.dev/baton/internal/adapters/state"
	_ "go.skiff.dev/baton/internal/adapters/telemetry"
	_ "go.skiff.dev/baton/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.skiff.dev/baton/internal/app"
	_ "go.skiff.dev/baton/internal/engine/runner"
)
