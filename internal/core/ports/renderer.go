package ports

// Renderer is the abstraction for user-facing run output. It owns stdout;
// diagnostics go through the Logger instead.
//
// Color handling is threaded into the renderer at construction, never held
// as process-global state.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// FenceOpen prints the opening code fence together with the info
	// string that tags the block.
	FenceOpen()

	// FenceClose prints the closing code fence followed by a blank line.
	FenceClose()

	// Prompt prints the command prompt without a trailing newline.
	Prompt()

	// Command echoes one command line. Occurrences of " && ", " || " and
	// "; " are rendered as shell line continuations.
	Command(text string)

	// Spacer separates consecutive commands inside a fence.
	Spacer()

	// Failure reports a command that exited with a non-accepted code or,
	// when exitCode is nil, was killed by a signal.
	Failure(text string, exitCode *int)

	// Report prints one accepted watch event as a change report line.
	Report(event WatchEvent)
}
