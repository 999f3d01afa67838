package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.spur.run/spur/internal/adapters/config"
	"go.spur.run/spur/internal/adapters/logger"
	"go.spur.run/spur/internal/adapters/shell"
	"go.spur.run/spur/internal/core/ports"
	"go.spur.run/spur/internal/engine/runner"
	"go.spur.run/spur/internal/engine/watch"
)

// NodeID is the unique identifier for the app Graft node.
const NodeID graft.ID = "app"

// Components aggregates the resolved object graph handed to main.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, shell.NodeID, logger.NodeID, runner.NodeID, watch.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
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
			run, err := graft.Dep[*runner.Runner](ctx)
			if err != nil {
				return nil, err
			}
			supervisor, err := graft.Dep[*watch.Supervisor](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    New(loader, executor, run, supervisor, log),
				Logger: log,
			}, nil
		},
	})
}
