package ignore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.spur.run/spur/internal/core/ports"
)

// NodeID is the unique identifier for the ignore Graft node.
const NodeID graft.ID = "adapter.ignore"

func init() {
	graft.Register(graft.Node[ports.Ignorer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Ignorer, error) {
			return New(), nil
		},
	})
}
