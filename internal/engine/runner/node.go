package runner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.skiff.dev/baton/internal/adapters/fs"
	"go.skiff.dev/baton/internal/adapters/logger"
	"go.skiff.dev/baton/internal/adapters/shell"
	"go.skiff.dev/baton/internal/adapters/state"
	"go.skiff.dev/baton/internal/core/ports"
)

const NodeID graft.ID = "engine.runner"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			fs.HasherNodeID,
			fs.VerifierNodeID,
			state.NodeID,
			fs.CleanerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Runner, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			verifier, err := graft.Dep[ports.Verifier](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.RunInfoStore](ctx)
			if err != nil {
				return nil, err
			}
			cleaner, err := graft.Dep[ports.Cleaner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(executor, hasher, verifier, store, cleaner, log), nil
		},
	})
}
