// Package config provides the settings file loader for spur.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.spur.run/spur/internal/core/domain"
	"go.spur.run/spur/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load searches cwd and its ancestors for a settings file and returns its
// contents. The nearest directory wins. A missing file is not an error;
// it yields empty settings so every key falls through to flag or default
// values.
func (l *Loader) Load(cwd string) (*domain.Settings, error) {
	// The ancestor walk needs an absolute path: Dir(".") is "." again, so
	// a relative start would never leave the current directory.
	start, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	configPath := l.findSettingsFile(start)
	if configPath == "" {
		return &domain.Settings{}, nil
	}

	var file File
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, err
	}

	return file.settings(), nil
}

func (l *Loader) findSettingsFile(cwd string) string {
	currentDir := cwd

	for {
		primaryPath := filepath.Join(currentDir, domain.ConfigFileName)
		alternatePath := filepath.Join(currentDir, domain.ConfigFileNameAlt)
		_, primaryErr := os.Stat(primaryPath)
		_, alternateErr := os.Stat(alternatePath)

		if primaryErr == nil && alternateErr == nil {
			l.Logger.Warn(fmt.Sprintf(
				"both %s and %s found in %s, using %s",
				domain.ConfigFileName, domain.ConfigFileNameAlt, currentDir, domain.ConfigFileName,
			))
		}
		if primaryErr == nil {
			return primaryPath
		}
		if alternateErr == nil {
			return alternatePath
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return ""
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered by the ancestor walk
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.With(zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error()), "path", configPath)
	}

	return nil
}
