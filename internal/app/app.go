// Package app implements the application layer for spur.
package app

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"go.spur.run/spur/internal/adapters/render"
	"go.spur.run/spur/internal/core/domain"
	"go.spur.run/spur/internal/core/ports"
	"go.spur.run/spur/internal/engine/runner"
	"go.spur.run/spur/internal/engine/watch"
	"go.spur.run/spur/internal/ui/output"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	runner       *runner.Runner
	supervisor   *watch.Supervisor
	logger       ports.Logger

	stdin  io.Reader
	stdout io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	executor ports.Executor,
	run *runner.Runner,
	supervisor *watch.Supervisor,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		executor:     executor,
		runner:       run,
		supervisor:   supervisor,
		logger:       log,
		stdin:        os.Stdin,
		stdout:       os.Stdout,
	}
}

// WithStreams replaces the standard streams the App reads and renders on.
// This is primarily used for testing.
func (a *App) WithStreams(stdin io.Reader, stdout io.Writer) *App {
	a.stdin = stdin
	a.stdout = stdout
	return a
}

// RunOptions carries the command line inputs for one invocation.
type RunOptions struct {
	// Args are the positional arguments: command strings, or files whose
	// lines are commands.
	Args []string

	// Overrides are the settings provided as flags; nil fields fall
	// through to the settings file and then to the defaults.
	Overrides domain.Settings

	// Watch lists the paths whose changes drive re-execution.
	Watch []string

	// Parallel runs the commands concurrently instead of sequentially.
	Parallel bool

	// DryRun renders the commands without executing anything.
	DryRun bool
}

// Run executes one invocation and returns the exit code for the process
// together with any fatal error. The code is meaningful even when the
// error is non-nil.
func (a *App) Run(ctx context.Context, opts RunOptions) (int, error) {
	settingsFile, err := a.configLoader.Load(".")
	if err != nil {
		return 1, err
	}

	settings, err := resolve(settingsFile, opts.Overrides)
	if err != nil {
		return 1, err
	}

	commands, err := a.collectCommands(opts.Args, settings)
	if err != nil {
		return 1, err
	}

	renderer := a.newRenderer(settings)

	if opts.DryRun {
		return a.runner.Run(ctx, commands, renderer, true)
	}

	if len(opts.Watch) > 0 {
		return a.watch(ctx, renderer, commands, opts.Watch, settings)
	}

	if len(commands) == 0 {
		return a.repl(ctx, renderer, settings)
	}

	if opts.Parallel {
		return a.runner.RunParallel(ctx, commands, renderer)
	}
	return a.runner.Run(ctx, commands, renderer, false)
}

// watch hands the session to the supervisor: with one command it
// supervises that command across changes, with none it reports changes.
// More than one command cannot be supervised and fails before any watch
// is registered.
func (a *App) watch(
	ctx context.Context,
	renderer ports.Renderer,
	commands []domain.Command,
	paths []string,
	settings runSettings,
) (int, error) {
	if len(commands) > 1 {
		return 1, zerr.With(domain.ErrWatchConflict, "commands", len(commands))
	}

	targets, err := resolveTargets(paths)
	if err != nil {
		return 1, err
	}

	var command *domain.Command
	if len(commands) == 1 {
		command = &commands[0]
	}

	if err := a.supervisor.Watch(ctx, renderer, watch.Options{
		Targets:  targets,
		Command:  command,
		Debounce: settings.debounce,
	}); err != nil {
		return 1, err
	}
	return 0, nil
}

// repl reads commands from stdin and runs each as it arrives. Only the
// prompt is rendered, no fence and no echo. The session ends with the
// exit status of the first command that fails, or zero at end of input.
func (a *App) repl(ctx context.Context, renderer ports.Renderer, settings runSettings) (int, error) {
	scanner := bufio.NewScanner(a.stdin)

	for first := true; ; first = false {
		if !first {
			renderer.Spacer()
		}
		renderer.Prompt()

		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		command := buildCommand(text, settings)
		result, err := a.executor.Execute(ctx, command)
		if err != nil {
			return 1, err
		}
		if !command.Accepts(result.ExitCode) {
			return result.Code(1), nil
		}
	}

	if err := scanner.Err(); err != nil {
		return 1, zerr.Wrap(err, "failed to read interactive input")
	}
	return 0, nil
}

// newRenderer builds the markdown renderer from the resolved settings.
// The renderer owns stdout; diagnostics go through the logger instead.
func (a *App) newRenderer(settings runSettings) ports.Renderer {
	out := output.New(a.stdout, settings.color)
	return render.New(out, render.Config{
		Fence:  settings.fence,
		Info:   settings.info,
		Prompt: settings.prompt,
		Quiet:  settings.quiet,
	})
}
