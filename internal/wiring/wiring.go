// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.spur.run/spur/internal/adapters/config"
	_ "go.spur.run/spur/internal/adapters/fs"
	_ "go.spur.run/spur/internal/adapters/ignore"
	_ "go.spur.run/spur/internal/adapters/logger"
	_ "go.spur.run/spur/internal/adapters/shell"
	_ "go.spur.run/spur/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.spur.run/spur/internal/app"
	_ "go.spur.run/spur/internal/engine/runner"
	_ "go.spur.run/spur/internal/engine/watch"
)
