package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.spur.run/spur/internal/adapters/ignore"
	"go.spur.run/spur/internal/core/ports"
)

// NodeID is the unique identifier for the file watcher Graft node.
const NodeID graft.ID = "adapter.watcher"

func init() {
	graft.Register(graft.Node[ports.Watcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ignore.NodeID},
		Run: func(ctx context.Context) (ports.Watcher, error) {
			ignorer, err := graft.Dep[ports.Ignorer](ctx)
			if err != nil {
				return nil, err
			}
			return NewWatcher(ignorer)
		},
	})
}
