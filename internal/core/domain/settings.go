package domain

// Settings file names, nearest ancestor wins.
const (
	ConfigFileName    = "spur.yml"
	ConfigFileNameAlt = "spur.yaml"
)

// Presentation and watch defaults, applied when neither a flag nor a
// settings file provides a value.
const (
	DefaultFence    = "```"
	DefaultInfo     = "text"
	DefaultPrompt   = "$ "
	DefaultDebounce = 1.0
)

// Settings are the optional values a settings file can provide. Pointer
// fields distinguish an absent key from an explicit zero value when flag,
// file and default values are merged.
type Settings struct {
	Shell    *string
	Fence    *string
	Info     *string
	Prompt   *string
	Debounce *float64
	Color    *string
	Quiet    *bool
}
