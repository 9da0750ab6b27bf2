package state

import (
	"context"

	"github.com/grindlemire/graft"
	"go.skiff.dev/baton/internal/core/ports"
)

const NodeID graft.ID = "adapter.run_info_store"

func init() {
	graft.Register(graft.Node[ports.RunInfoStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RunInfoStore, error) {
			return NewStore(DefaultPath)
		},
	})
}
