package ports

import "io"

// Logger defines the interface for application diagnostics. Log output goes
// to stderr so the renderer keeps sole ownership of stdout.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Info logs an informational message.
	Info(msg string)
	// Warn logs a warning message.
	Warn(msg string)
	// Error logs an error with its cause chain.
	Error(err error)
	// SetOutput updates the logger's output destination. Used for testing.
	SetOutput(w io.Writer)
}
