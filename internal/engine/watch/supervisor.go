package watch

import (
	"context"
	"fmt"
	"time"

	"go.spur.run/spur/internal/core/domain"
	"go.spur.run/spur/internal/core/ports"
)

// Options configure one watch session.
type Options struct {
	// Targets are the paths to watch, validated and classified upfront.
	Targets []domain.WatchTarget

	// Command is relaunched on every accepted change. Nil runs the
	// session as a pure change reporter.
	Command *domain.Command

	// Debounce is the minimum quiet time required between two restarts.
	Debounce time.Duration
}

// Supervisor runs the watch loop: it owns the tracked snapshot, the
// debounce gate and the single supervised child. All session state is
// confined to the loop goroutine; the watcher and the child's completion
// signal reach it through channels.
type Supervisor struct {
	session  *Session
	watcher  ports.Watcher
	executor ports.Executor
	logger   ports.Logger
}

// NewSupervisor creates a new Supervisor.
func NewSupervisor(session *Session, watcher ports.Watcher, executor ports.Executor, logger ports.Logger) *Supervisor {
	return &Supervisor{
		session:  session,
		watcher:  watcher,
		executor: executor,
		logger:   logger,
	}
}

// Watch supervises the command until the context is canceled or the
// notification layer fails. The command is launched once immediately;
// every accepted change kills a still-running child, reports the change
// and relaunches. A clean shutdown returns nil.
func (s *Supervisor) Watch(ctx context.Context, renderer ports.Renderer, opts Options) error {
	tracked, err := s.session.Snapshot(opts.Targets)
	if err != nil {
		return err
	}

	if err := s.watcher.Start(ctx, opts.Targets); err != nil {
		return err
	}
	defer func() { _ = s.watcher.Stop() }()

	s.logger.Info(fmt.Sprintf("watching %d target(s), %d file(s) fingerprinted", len(opts.Targets), tracked.Files()))

	run := newSupervisedRun(s.executor, renderer, s.logger, opts.Command)
	if opts.Command != nil {
		if err := run.launch(ctx); err != nil {
			return err
		}
	}

	gate := NewGate(opts.Debounce, time.Now())
	events := s.relayEvents(ctx)

	for {
		select {
		case <-ctx.Done():
			return run.retire()

		case c := <-run.completions:
			run.finish(c)

		case event, ok := <-events:
			if !ok {
				// The stream ended without cancellation: the watcher
				// was stopped or the notification layer failed.
				retireErr := run.retire()
				if err := s.watcher.Err(); err != nil {
					return err
				}
				return retireErr
			}

			if !s.session.Evaluate(event, tracked) {
				continue
			}
			if !gate.Accept(time.Now()) {
				continue
			}

			if opts.Command == nil {
				renderer.Report(event)
				continue
			}
			if err := run.restart(ctx, event); err != nil {
				return err
			}
		}
	}
}

// relayEvents bridges the watcher's event sequence onto a channel the
// supervision loop can select on alongside child completions.
func (s *Supervisor) relayEvents(ctx context.Context) <-chan ports.WatchEvent {
	events := make(chan ports.WatchEvent)
	go func() {
		defer close(events)
		for event := range s.watcher.Events() {
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events
}

// completion reports the exit of one launched child together with the
// launch generation it belongs to, so exits of already-retired children
// can be told apart from the current one.
type completion struct {
	gen    int
	result domain.Result
}

// supervisedRun tracks the currently supervised child and renders its
// lifecycle. Exactly one child is current at a time; proc is nil once its
// end has been rendered.
type supervisedRun struct {
	executor    ports.Executor
	renderer    ports.Renderer
	logger      ports.Logger
	command     *domain.Command
	completions chan completion

	proc      ports.Process
	startedAt time.Time
	gen       int
}

func newSupervisedRun(executor ports.Executor, renderer ports.Renderer, logger ports.Logger, command *domain.Command) *supervisedRun {
	return &supervisedRun{
		executor:    executor,
		renderer:    renderer,
		logger:      logger,
		command:     command,
		completions: make(chan completion, 1),
	}
}

// launch opens a fresh fenced block, echoes the command and starts it.
func (r *supervisedRun) launch(ctx context.Context) error {
	r.gen++
	r.renderer.FenceOpen()
	r.renderer.Prompt()
	r.renderer.Command(r.command.Text)

	proc, err := r.executor.Start(ctx, *r.command)
	if err != nil {
		r.renderer.FenceClose()
		return err
	}
	r.proc = proc
	r.startedAt = time.Now()

	go func(gen int, proc ports.Process) {
		result := proc.Wait()
		select {
		case r.completions <- completion{gen: gen, result: result}:
		case <-ctx.Done():
		}
	}(r.gen, proc)

	return nil
}

// finish renders the end of the current child after it exited on its own.
// Exits of retired generations were already rendered by retire and are
// dropped.
func (r *supervisedRun) finish(c completion) {
	if c.gen != r.gen || r.proc == nil {
		return
	}
	r.proc = nil

	r.renderer.FenceClose()
	if !r.command.Accepts(c.result.ExitCode) {
		r.renderer.Failure(r.command.Text, c.result.ExitCode)
	}
}

// restart closes out the current child and launches a fresh one for the
// accepted event.
func (r *supervisedRun) restart(ctx context.Context, event ports.WatchEvent) error {
	uptime := time.Since(r.startedAt).Round(time.Millisecond)
	if err := r.retire(); err != nil {
		return err
	}
	r.logger.Info(fmt.Sprintf("restarting after %s", uptime))
	r.renderer.Report(event)
	return r.launch(ctx)
}

// retire ends the current child's block. A still-running child is killed
// and confirmed dead first; the deliberate kill is not reported as a
// failure. A child that already exited on its own but whose completion
// has not been consumed yet is rendered the way finish would have.
func (r *supervisedRun) retire() error {
	if r.proc == nil {
		return nil
	}

	alive := r.proc.Alive()
	if alive {
		if err := r.proc.Terminate(); err != nil {
			return err
		}
	}
	result := r.proc.Wait()
	r.proc = nil

	r.renderer.FenceClose()
	if !alive && !r.command.Accepts(result.ExitCode) {
		r.renderer.Failure(r.command.Text, result.ExitCode)
	}
	return nil
}
