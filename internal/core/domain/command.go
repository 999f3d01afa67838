package domain

import "slices"

// PipeKind selects how one standard stream of a spawned command is wired.
type PipeKind uint8

const (
	// PipeInherit connects the stream to the parent's own copy of the same
	// stream. The zero value: a bare Command behaves like a plain shell
	// invocation and interactive children work unmodified.
	PipeInherit PipeKind = iota

	// PipeNull wires the stream to the null device.
	PipeNull

	// PipeStdout redirects an output stream onto the parent's stdout.
	PipeStdout

	// PipeStderr redirects an output stream onto the parent's stderr.
	PipeStderr

	// PipeCapture collects an output stream into the command's Result.
	PipeCapture

	// PipeText writes the pipe's Text to the child's stdin and closes it.
	// Only meaningful on stdin.
	PipeText
)

// Pipe describes the wiring of one standard stream. Text carries the
// scripted stdin payload for PipeText and is ignored by every other kind.
type Pipe struct {
	Kind PipeKind
	Text string
}

// TextPipe returns a stdin pipe that feeds s to the child and then closes
// the stream, so a child that never reads cannot block the parent.
func TextPipe(s string) Pipe {
	return Pipe{Kind: PipeText, Text: s}
}

// Command is a single shell command together with its stream wiring and
// the exit codes it treats as success. The same value is reused verbatim
// when the watch supervisor relaunches a command, so everything needed to
// re-execute it travels with it.
type Command struct {
	// Text is the command line as the user wrote it.
	Text string

	// Shell is the wrapper invocation the text is handed to, e.g. "sh -c".
	// The command text becomes the wrapper's final argument. An empty
	// Shell runs the first token of Text directly.
	Shell string

	Stdin  Pipe
	Stdout Pipe
	Stderr Pipe

	// AcceptedCodes lists the exit codes considered successful. A nil or
	// empty list accepts only zero.
	AcceptedCodes []int
}

// NewCommand returns a Command running text under "sh -c" with inherited
// streams, accepting only exit code zero.
func NewCommand(text string) Command {
	return Command{
		Text:          text,
		Shell:         DefaultShell,
		AcceptedCodes: []int{0},
	}
}

// DefaultShell is the wrapper used when none is configured.
const DefaultShell = "sh -c"

// Accepts reports whether code is an exit code this command treats as
// success. A nil code means the child was killed by a signal and is never
// accepted.
func (c Command) Accepts(code *int) bool {
	if code == nil {
		return false
	}
	if len(c.AcceptedCodes) == 0 {
		return *code == 0
	}
	return slices.Contains(c.AcceptedCodes, *code)
}

// Result reports one finished execution of a Command.
type Result struct {
	// ExitCode is the child's exit code, or nil when the child was
	// terminated by a signal and no code exists.
	ExitCode *int

	// Stdout and Stderr hold captured output and are empty unless the
	// corresponding pipe was PipeCapture.
	Stdout string
	Stderr string
}

// Code returns the exit code to report to the operating system for this
// result: the child's own code when it exited normally, otherwise fallback.
func (r Result) Code(fallback int) int {
	if r.ExitCode == nil {
		return fallback
	}
	return *r.ExitCode
}
