package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.spur.run/spur/internal/adapters/ignore"
	"go.spur.run/spur/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// HasherNodeID is the unique identifier for the hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
)

func init() {
	graft.Register(graft.Node[ports.Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ignore.NodeID},
		Run: func(ctx context.Context) (ports.Walker, error) {
			ignorer, err := graft.Dep[ports.Ignorer](ctx)
			if err != nil {
				return nil, err
			}
			return NewWalker(ignorer), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}
