package ports

import "go.spur.run/spur/internal/core/domain"

// ConfigLoader defines the interface for loading optional tool settings.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load searches cwd and its ancestors for a settings file and returns
	// its contents. A missing file yields empty settings and no error; an
	// unreadable or unparsable file is a configuration error.
	Load(cwd string) (*domain.Settings, error)
}
