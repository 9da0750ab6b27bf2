package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.skiff.dev/baton/internal/core/ports"
)

const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			return NewNoop(), nil
		},
	})
}
