// Package output provides utilities for creating termenv.Output with
// consistent color profile and TTY handling across the CLI.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"go.spur.run/spur/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// Mode controls whether styled output is emitted. It is resolved once from
// the --color flag and threaded into every collaborator that renders.
type Mode uint8

const (
	// ModeAuto styles output when the destination is a terminal and
	// NO_COLOR is unset.
	ModeAuto Mode = iota
	// ModeAlways styles output unconditionally.
	ModeAlways
	// ModeNever disables styling.
	ModeNever
)

// ParseMode converts a color flag value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "auto":
		return ModeAuto, nil
	case "always":
		return ModeAlways, nil
	case "never":
		return ModeNever, nil
	default:
		return ModeAuto, zerr.With(domain.ErrInvalidColorMode, "value", s)
	}
}

// ProfileFor returns the termenv color profile for writing to w under mode.
func ProfileFor(w io.Writer, mode Mode) termenv.Profile {
	switch mode {
	case ModeAlways:
		return termenv.TrueColor
	case ModeNever:
		return termenv.Ascii
	default:
		if os.Getenv("NO_COLOR") != "" {
			return termenv.Ascii
		}
		f, ok := w.(*os.File)
		if !ok || !term.IsTerminal(int(f.Fd())) {
			return termenv.Ascii
		}
		return termenv.EnvColorProfile()
	}
}

// New creates a new termenv.Output writing to w with the profile resolved
// for mode.
func New(w io.Writer, mode Mode, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ProfileFor(w, mode)),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

// NewWithProfile creates a new termenv.Output with a custom profile selector.
func NewWithProfile(w io.Writer, profileFn func() termenv.Profile, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(profileFn()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}
