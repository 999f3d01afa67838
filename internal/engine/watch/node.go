package watch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.spur.run/spur/internal/adapters/fs"
	"go.spur.run/spur/internal/adapters/ignore"
	"go.spur.run/spur/internal/adapters/logger"
	"go.spur.run/spur/internal/adapters/shell"
	"go.spur.run/spur/internal/adapters/watcher"
	"go.spur.run/spur/internal/core/ports"
)

// NodeID is the unique identifier for the watch supervisor Graft node.
const NodeID graft.ID = "engine.supervisor"

func init() {
	graft.Register(graft.Node[*Supervisor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID, fs.HasherNodeID, ignore.NodeID, watcher.NodeID, shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Supervisor, error) {
			walker, err := graft.Dep[ports.Walker](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			ignorer, err := graft.Dep[ports.Ignorer](ctx)
			if err != nil {
				return nil, err
			}
			fsWatcher, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			session := NewSession(walker, hasher, ignorer)
			return NewSupervisor(session, fsWatcher, executor, log), nil
		},
	})
}
