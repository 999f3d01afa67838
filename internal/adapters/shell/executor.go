// Package shell provides the process-spawning executor for commands.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.spur.run/spur/internal/core/domain"
	"go.spur.run/spur/internal/core/ports"
	"go.trai.ch/zerr"
	sh "mvdan.cc/sh/v3/shell"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec. Every child runs in
// its own process group so the full tree can be signaled at once.
type Executor struct{}

// NewExecutor creates a new Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Execute runs the command to completion and returns its result.
func (e *Executor) Execute(ctx context.Context, command domain.Command) (domain.Result, error) {
	proc, err := e.Start(ctx, command)
	if err != nil {
		return domain.Result{}, err
	}
	return proc.Wait(), nil
}

// Start launches the command without waiting and returns a handle to it.
func (e *Executor) Start(ctx context.Context, command domain.Command) (ports.Process, error) {
	argv, err := buildArgv(command)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // user provided command
	cmd.SysProcAttr = sysProcAttr()

	switch command.Stdin.Kind {
	case domain.PipeInherit:
		cmd.Stdin = os.Stdin
	case domain.PipeText:
		cmd.Stdin = strings.NewReader(command.Stdin.Text)
	default:
		// PipeNull: a nil stdin reads EOF from the null device.
	}

	var stdoutBuf, stderrBuf *bytes.Buffer
	cmd.Stdout, stdoutBuf = outputWriter(command.Stdout, os.Stdout)
	cmd.Stderr, stderrBuf = outputWriter(command.Stderr, os.Stderr)

	// "sh -c" children spawn grandchildren; cancellation must signal the
	// whole group, not just the direct child.
	cmd.Cancel = func() error {
		return terminateGroup(cmd.Process.Pid)
	}

	if err := cmd.Start(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSpawnFailed.Error()), "command", command.Text)
	}

	proc := &process{cmd: cmd, done: make(chan struct{})}
	go func() {
		defer close(proc.done)
		proc.result = resultFrom(cmd.Wait(), stdoutBuf, stderrBuf)
	}()

	return proc, nil
}

// buildArgv turns a command into the argument vector to spawn. A non-empty
// shell is tokenized and the command text becomes its final argument; an
// empty shell tokenizes the command text itself.
func buildArgv(command domain.Command) ([]string, error) {
	if command.Shell != "" {
		fields, err := sh.Fields(command.Shell, nil)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrTokenizeFailed.Error()), "shell", command.Shell)
		}
		if len(fields) == 0 {
			return nil, zerr.With(domain.ErrEmptyCommand, "shell", command.Shell)
		}
		return append(fields, command.Text), nil
	}

	fields, err := sh.Fields(command.Text, nil)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrTokenizeFailed.Error()), "command", command.Text)
	}
	if len(fields) == 0 {
		return nil, domain.ErrEmptyCommand
	}
	return fields, nil
}

// outputWriter resolves an output pipe to the writer handed to the child.
// For PipeCapture the returned buffer collects the stream; PipeNull and
// anything unrecognized leave the writer nil, which os/exec connects to
// the null device.
func outputWriter(p domain.Pipe, inherit io.Writer) (io.Writer, *bytes.Buffer) {
	switch p.Kind {
	case domain.PipeInherit:
		return inherit, nil
	case domain.PipeStdout:
		return os.Stdout, nil
	case domain.PipeStderr:
		return os.Stderr, nil
	case domain.PipeCapture:
		buf := &bytes.Buffer{}
		return buf, buf
	default:
		return nil, nil
	}
}

// resultFrom converts the outcome of Wait into a Result. A child killed by
// a signal has no exit code.
func resultFrom(waitErr error, stdout, stderr *bytes.Buffer) domain.Result {
	var res domain.Result
	if stdout != nil {
		res.Stdout = stdout.String()
	}
	if stderr != nil {
		res.Stderr = stderr.String()
	}

	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
		code := 0
		res.ExitCode = &code
	case errors.As(waitErr, &exitErr):
		if code := exitErr.ExitCode(); code >= 0 {
			res.ExitCode = &code
		}
	}
	return res
}

// process is a handle to a started command.
type process struct {
	cmd    *exec.Cmd
	done   chan struct{}
	result domain.Result
}

// Wait blocks until the child exits and returns its result.
func (p *process) Wait() domain.Result {
	<-p.done
	return p.result
}

// Alive reports whether the child is still running.
func (p *process) Alive() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// Terminate hard-kills the child's process group. A child that already
// exited is not an error.
func (p *process) Terminate() error {
	if !p.Alive() {
		return nil
	}
	if err := terminateGroup(p.cmd.Process.Pid); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return zerr.Wrap(err, domain.ErrKillFailed.Error())
	}
	return nil
}
