package render_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.spur.run/spur/internal/adapters/render"
	"go.spur.run/spur/internal/core/ports"
	"go.spur.run/spur/internal/ui/output"
)

// newRenderer returns a renderer writing plain text into buf.
func newRenderer(t *testing.T, buf *bytes.Buffer, cfg render.Config) *render.Markdown {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	return render.New(output.New(buf, output.ModeAuto), cfg)
}

func defaults() render.Config {
	return render.Config{Fence: "```", Info: "text", Prompt: "$ "}
}

func TestMarkdown_FenceOpen(t *testing.T) {
	buf := &bytes.Buffer{}
	r := newRenderer(t, buf, defaults())

	r.FenceOpen()

	g := goldie.New(t)
	g.Assert(t, "fence_open", buf.Bytes())
}

func TestMarkdown_FenceClose(t *testing.T) {
	buf := &bytes.Buffer{}
	r := newRenderer(t, buf, defaults())

	r.FenceClose()

	g := goldie.New(t)
	g.Assert(t, "fence_close", buf.Bytes())
}

func TestMarkdown_Prompt(t *testing.T) {
	buf := &bytes.Buffer{}
	r := newRenderer(t, buf, defaults())

	r.Prompt()

	assert.Equal(t, "$ ", buf.String())
}

func TestMarkdown_Command(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		goldenName string
	}{
		{
			name:       "simple command",
			text:       "ls -l",
			goldenName: "command_simple",
		},
		{
			name:       "and chain breaks onto continuation lines",
			text:       "cargo build && cargo test && cargo doc",
			goldenName: "command_and_chain",
		},
		{
			name:       "or chain breaks onto continuation lines",
			text:       "test -f out || make out",
			goldenName: "command_or_chain",
		},
		{
			name:       "semicolons break after the separator",
			text:       "make clean; make all",
			goldenName: "command_semicolons",
		},
		{
			name:       "mixed separators",
			text:       "mkdir -p dist && cp a dist; echo done || echo failed",
			goldenName: "command_mixed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			r := newRenderer(t, buf, defaults())

			r.Command(tt.text)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestMarkdown_Failure(t *testing.T) {
	t.Run("exit code", func(t *testing.T) {
		buf := &bytes.Buffer{}
		r := newRenderer(t, buf, defaults())

		code := 42
		r.Failure("false", &code)

		g := goldie.New(t)
		g.Assert(t, "failure_exit_code", buf.Bytes())
	})

	t.Run("killed by signal", func(t *testing.T) {
		buf := &bytes.Buffer{}
		r := newRenderer(t, buf, defaults())

		r.Failure("sleep 30", nil)

		g := goldie.New(t)
		g.Assert(t, "failure_signal", buf.Bytes())
	})
}

func TestMarkdown_Report(t *testing.T) {
	buf := &bytes.Buffer{}
	r := newRenderer(t, buf, defaults())

	r.Report(ports.WatchEvent{Path: "src/main.go", Operation: ports.OpModified})
	r.Report(ports.WatchEvent{Path: "assets/logo.svg", Operation: ports.OpCreated})
	r.Report(ports.WatchEvent{Path: "dist", Operation: ports.OpRemoved})

	g := goldie.New(t)
	g.Assert(t, "report_events", buf.Bytes())
}

func TestMarkdown_CommandRun(t *testing.T) {
	// The full shape of a two-command run with a trailing failure.
	buf := &bytes.Buffer{}
	r := newRenderer(t, buf, defaults())

	r.FenceOpen()
	r.Prompt()
	r.Command("echo one")
	r.Spacer()
	r.Prompt()
	r.Command("false")
	r.FenceClose()
	code := 1
	r.Failure("false", &code)

	g := goldie.New(t)
	g.Assert(t, "command_run", buf.Bytes())
}

func TestMarkdown_CustomConfig(t *testing.T) {
	buf := &bytes.Buffer{}
	r := newRenderer(t, buf, render.Config{Fence: "~~~", Info: "console", Prompt: "> "})

	r.FenceOpen()
	r.Prompt()
	r.Command("ls")
	r.FenceClose()

	g := goldie.New(t)
	g.Assert(t, "custom_config", buf.Bytes())
}

func TestMarkdown_Quiet(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := defaults()
	cfg.Quiet = true
	r := newRenderer(t, buf, cfg)

	r.FenceOpen()
	r.Prompt()
	r.Command("echo hidden")
	r.Spacer()
	code := 9
	r.Failure("echo hidden", &code)
	r.FenceClose()

	assert.Empty(t, buf.String())

	// Watch reports are exempt from quiet.
	r.Report(ports.WatchEvent{Path: "main.go", Operation: ports.OpModified})
	assert.Equal(t, "Modified: `main.go`\n", buf.String())
}

func TestMarkdown_ColorsApplied(t *testing.T) {
	buf := &bytes.Buffer{}
	r := render.New(output.NewWithProfile(buf, func() termenv.Profile { return termenv.TrueColor }), defaults())

	r.Command("ls")

	got := buf.String()
	assert.Contains(t, got, "\x1b[", "expected ANSI styling with a forced color profile")
	assert.Contains(t, got, "ls")
}
