// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.spur.run/spur/internal/core/domain"
)

// Executor defines the interface for running shell commands.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command to completion and returns its result.
	//
	// The error covers tokenization and spawn failures; a command that ran
	// and exited with a bad code is reported through the Result, not the
	// error.
	Execute(ctx context.Context, cmd domain.Command) (domain.Result, error)

	// Start launches the command without waiting and returns a handle the
	// caller can poll, terminate and await.
	Start(ctx context.Context, cmd domain.Command) (Process, error)
}

// Process is a handle to a launched command.
type Process interface {
	// Wait blocks until the child exits and returns its result.
	// It is safe to call after Terminate.
	Wait() domain.Result

	// Alive reports whether the child is still running.
	Alive() bool

	// Terminate sends a hard termination signal to the child's process
	// group. It fails when a still-running child cannot be signaled.
	Terminate() error
}
