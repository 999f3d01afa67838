// Package runner executes command lists and renders their progress.
package runner

import (
	"context"
	"runtime"

	"go.spur.run/spur/internal/core/domain"
	"go.spur.run/spur/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Runner drives the execution of a command list. The renderer is passed
// per call because it is built from resolved run settings, after the
// runner itself exists.
type Runner struct {
	executor ports.Executor
}

// New creates a new Runner with the given executor.
func New(executor ports.Executor) *Runner {
	return &Runner{executor: executor}
}

// Run executes commands one after another inside a single fenced block and
// stops at the first command whose exit the command does not accept.
//
// The returned code is the exit code of the last command that ran: zero
// when nothing ran, the fallback one when the child was killed by a
// signal. The error reports infrastructure failures only; a command that
// ran and failed is rendered, not returned.
func (r *Runner) Run(ctx context.Context, commands []domain.Command, renderer ports.Renderer, dryRun bool) (int, error) {
	renderer.FenceOpen()

	if dryRun {
		for _, command := range commands {
			renderer.Command(command.Text)
		}
		renderer.FenceClose()
		return 0, nil
	}

	exitCode := 0
	for i, command := range commands {
		if i > 0 {
			renderer.Spacer()
		}
		renderer.Prompt()
		renderer.Command(command.Text)

		result, err := r.executor.Execute(ctx, command)
		if err != nil {
			renderer.FenceClose()
			return 1, err
		}

		exitCode = result.Code(1)
		if !command.Accepts(result.ExitCode) {
			renderer.FenceClose()
			renderer.Failure(command.Text, result.ExitCode)
			return exitCode, nil
		}
	}

	renderer.FenceClose()
	return exitCode, nil
}

// RunParallel executes all commands concurrently, bounded by the CPU
// count. Nothing is echoed while commands run; children write to their
// own streams directly. Failures are reported afterwards in input order.
//
// The returned code follows the same rule as Run: the code of the last
// command in input order.
func (r *Runner) RunParallel(ctx context.Context, commands []domain.Command, renderer ports.Renderer) (int, error) {
	results := make([]domain.Result, len(commands))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, command := range commands {
		g.Go(func() error {
			result, err := r.executor.Execute(ctx, command)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 1, err
	}

	for i, command := range commands {
		if !command.Accepts(results[i].ExitCode) {
			renderer.Failure(command.Text, results[i].ExitCode)
		}
	}

	if len(commands) == 0 {
		return 0, nil
	}
	return results[len(commands)-1].Code(1), nil
}
