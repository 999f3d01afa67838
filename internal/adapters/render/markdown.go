// Package render implements the fenced-markdown presentation of command
// runs.
package render

import (
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"go.spur.run/spur/internal/core/ports"
	"go.spur.run/spur/internal/ui/style"
)

var _ ports.Renderer = (*Markdown)(nil)

// Config carries the presentation knobs for a Markdown renderer.
type Config struct {
	// Fence opens and closes the output block.
	Fence string
	// Info is the info string appended to the opening fence.
	Info string
	// Prompt precedes each echoed command.
	Prompt string
	// Quiet suppresses everything except watch reports.
	Quiet bool
}

// Markdown renders command runs as a fenced code block: the opening fence
// carries an info string, each command is echoed behind a prompt, and
// failures are reported after the closing fence.
type Markdown struct {
	out *termenv.Output
	cfg Config
}

// New creates a Markdown renderer writing to out.
func New(out *termenv.Output, cfg Config) *Markdown {
	return &Markdown{out: out, cfg: cfg}
}

// FenceOpen prints the opening fence and the info string.
func (m *Markdown) FenceOpen() {
	if m.cfg.Quiet {
		return
	}
	m.write(m.dim(m.cfg.Fence + m.cfg.Info).String() + "\n")
}

// FenceClose prints the closing fence followed by a blank line.
func (m *Markdown) FenceClose() {
	if m.cfg.Quiet {
		return
	}
	m.write(m.dim(m.cfg.Fence).String() + "\n\n")
}

// Prompt prints the prompt without a trailing newline.
func (m *Markdown) Prompt() {
	if m.cfg.Quiet {
		return
	}
	m.write(m.dim(m.cfg.Prompt).String())
}

// Command echoes the command text. Chained commands are split onto
// continuation lines at " && ", " || " and "; ".
func (m *Markdown) Command(text string) {
	if m.cfg.Quiet {
		return
	}
	echoed := strings.ReplaceAll(text, " && ", " \\\n&& ")
	echoed = strings.ReplaceAll(echoed, " || ", " \\\n|| ")
	echoed = strings.ReplaceAll(echoed, "; ", "; \\\n")

	styled := m.out.String(echoed).Foreground(termenv.RGBColor(string(style.Command))).Bold()
	m.write(styled.String() + "\n")
}

// Spacer prints the blank line separating consecutive commands.
func (m *Markdown) Spacer() {
	if m.cfg.Quiet {
		return
	}
	m.write("\n")
}

// Failure reports a command that exited outside its accepted codes, or was
// killed by a signal when exitCode is nil.
func (m *Markdown) Failure(text string, exitCode *int) {
	if m.cfg.Quiet {
		return
	}

	var msg string
	if exitCode != nil {
		msg = "**Command `" + text + "` exited with code: `" + strconv.Itoa(*exitCode) + "`!**"
	} else {
		msg = "**Command `" + text + "` was killed by a signal!**"
	}

	styled := m.out.String(msg).Foreground(termenv.RGBColor(string(style.Failure))).Bold().Italic()
	m.write(styled.String() + "\n\n")
}

// Report prints one watched-file event. Reports stay visible in quiet mode.
func (m *Markdown) Report(event ports.WatchEvent) {
	m.write(m.dim(event.Operation.String()+": `"+event.Path+"`").String() + "\n")
}

func (m *Markdown) dim(s string) termenv.Style {
	return m.out.String(s).Foreground(termenv.RGBColor(string(style.Dim)))
}

func (m *Markdown) write(s string) {
	_, _ = m.out.WriteString(s)
}
