package config

import "go.spur.run/spur/internal/core/domain"

// File represents the structure of the spur.yml settings file. Every key
// is optional; pointer fields keep an absent key distinguishable from an
// explicit zero value so later merging can tell the two apart.
type File struct {
	Shell    *string  `yaml:"shell"`
	Fence    *string  `yaml:"fence"`
	Info     *string  `yaml:"info"`
	Prompt   *string  `yaml:"prompt"`
	Debounce *float64 `yaml:"debounce"`
	Color    *string  `yaml:"color"`
	Quiet    *bool    `yaml:"quiet"`
}

// settings converts the parsed file into domain settings. Values are
// passed through untouched; range and enum checks happen when settings
// are merged with flags.
func (f *File) settings() *domain.Settings {
	return &domain.Settings{
		Shell:    f.Shell,
		Fence:    f.Fence,
		Info:     f.Info,
		Prompt:   f.Prompt,
		Debounce: f.Debounce,
		Color:    f.Color,
		Quiet:    f.Quiet,
	}
}
