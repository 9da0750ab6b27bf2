package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.skiff.dev/baton/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.skiff.dev/baton/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.skiff.dev/baton/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.skiff.dev/baton/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.skiff.dev/baton/internal/core/ports"
	"go.skiff.dev/baton/internal/engine/runner"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			runner.NodeID,
			watcher.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[*config.Loader](ctx)
			if err != nil {
				return nil, err
			}

			run, err := graft.Dep[*runner.Runner](ctx)
			if err != nil {
				return nil, err
			}

			watch, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, run, watch, tel, log), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			loader, err := graft.Dep[*config.Loader](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:          application,
				Logger:       log,
				ConfigLoader: loader,
			}, nil
		},
	})
}
