package ports

import "go.trai.ch/stitch/internal/core/domain"

// ConfigLoader defines the interface for loading build configurations.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path and layers overrides on top.
	// An empty path yields the defaults.
	Load(path string, overrides domain.Settings) (domain.Config, error)
	// Resolve layers base and overrides over the defaults, following any config references.
	Resolve(base, overrides domain.Settings) (domain.Config, error)
}
