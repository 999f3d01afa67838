package domain

import "go.trai.ch/zerr"

var (
	// ErrTargetNotFound is returned when a watch target path does not exist.
	ErrTargetNotFound = zerr.New("watch target does not exist")

	// ErrTargetStatFailed is returned when a watch target cannot be inspected.
	ErrTargetStatFailed = zerr.New("failed to stat watch target")

	// ErrWatchConflict is returned when watch mode is combined with more than one command.
	ErrWatchConflict = zerr.New("watch mode supervises a single command")

	// ErrTokenizeFailed is returned when a command or shell string cannot be split into fields.
	ErrTokenizeFailed = zerr.New("failed to tokenize command")

	// ErrEmptyCommand is returned when tokenization yields no program to run.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrSpawnFailed is returned when a child process cannot be started.
	ErrSpawnFailed = zerr.New("failed to start command")

	// ErrKillFailed is returned when a still-running child cannot be terminated.
	ErrKillFailed = zerr.New("failed to terminate running command")

	// ErrNotifierFailed is returned when the filesystem notification layer reports an error.
	ErrNotifierFailed = zerr.New("file watcher failed")

	// ErrWalkFailed is returned when enumerating a watched directory fails.
	ErrWalkFailed = zerr.New("failed to walk directory")

	// ErrFileHashFailed is returned when hashing a file's content fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrScriptReadFailed is returned when a command file argument cannot be read.
	ErrScriptReadFailed = zerr.New("failed to read command file")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidColorMode is returned when a color mode is not one of auto, always or never.
	ErrInvalidColorMode = zerr.New("invalid color mode, expected 'auto', 'always' or 'never'")

	// ErrInvalidDebounce is returned when the debounce window is negative.
	ErrInvalidDebounce = zerr.New("debounce window must not be negative")
)
