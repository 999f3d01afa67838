// Package style provides shared UI styling primitives including colors and
// icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Render colors for the markdown-fence output.
var (
	// Dim colors the fence, the info string and the prompt.
	Dim = lipgloss.Color("#555555")
	// Command colors echoed command text.
	Command = lipgloss.Color("#00FFFF")
	// Failure colors command failure reports.
	Failure = lipgloss.Color("#FF0000")
)

// Diagnostic colors for logging.
var (
	Slate  = lipgloss.Color("#667085")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
)
