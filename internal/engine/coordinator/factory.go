package coordinator

import (
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
)

// Factory creates Coordinators that share every collaborator except the bundler,
// which is built per configuration.
type Factory struct {
	deps     Deps
	bundlers ports.BundlerFactory
}

// NewFactory creates a Factory. deps.Bundler and deps.Bundlers are ignored.
func NewFactory(deps Deps, bundlers ports.BundlerFactory) *Factory {
	return &Factory{deps: deps, bundlers: bundlers}
}

// New creates a Coordinator for cfg rooted at root.
func (f *Factory) New(cfg domain.Config, root string) (*Coordinator, error) {
	bundler, err := f.bundlers.New(cfg)
	if err != nil {
		return nil, err
	}
	deps := f.deps
	deps.Bundler = bundler
	deps.Bundlers = f.bundlers
	return New(cfg, root, deps)
}
