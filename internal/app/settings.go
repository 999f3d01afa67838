package app

import (
	"time"

	"go.spur.run/spur/internal/core/domain"
	"go.spur.run/spur/internal/ui/output"
	"go.trai.ch/zerr"
)

// runSettings are the fully resolved values one invocation runs with.
type runSettings struct {
	shell    string
	fence    string
	info     string
	prompt   string
	debounce time.Duration
	color    output.Mode
	quiet    bool
}

// resolve merges the settings layers: an explicitly set flag wins over the
// settings file, which wins over the built-in defaults.
func resolve(file *domain.Settings, flags domain.Settings) (runSettings, error) {
	debounce := pick(flags.Debounce, file.Debounce, domain.DefaultDebounce)
	if debounce < 0 {
		return runSettings{}, zerr.With(domain.ErrInvalidDebounce, "seconds", debounce)
	}

	mode, err := output.ParseMode(pick(flags.Color, file.Color, "auto"))
	if err != nil {
		return runSettings{}, err
	}

	return runSettings{
		shell:    pick(flags.Shell, file.Shell, domain.DefaultShell),
		fence:    pick(flags.Fence, file.Fence, domain.DefaultFence),
		info:     pick(flags.Info, file.Info, domain.DefaultInfo),
		prompt:   pick(flags.Prompt, file.Prompt, domain.DefaultPrompt),
		debounce: time.Duration(debounce * float64(time.Second)),
		color:    mode,
		quiet:    pick(flags.Quiet, file.Quiet, false),
	}, nil
}

// pick returns the first provided value in flag > file > default order.
func pick[T any](flag, file *T, fallback T) T {
	if flag != nil {
		return *flag
	}
	if file != nil {
		return *file
	}
	return fallback
}
