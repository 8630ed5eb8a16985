package ports

import (
	"context"

	"go.trai.ch/stitch/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=bundler.go -destination=mocks/mock_bundler.go -package=mocks

// Bundler produces the artifact body from a set of source files.
type Bundler interface {
	// Check reports a configuration error when the bundler cannot serve cfg.
	Check(cfg domain.Config) error
	// Bundle concatenates files in order, applying transpilers and minification.
	Bundle(ctx context.Context, files domain.FileSet, cfg domain.Config) ([]byte, error)
}

// BundlerFactory builds a Bundler for a configuration.
type BundlerFactory interface {
	New(cfg domain.Config) (Bundler, error)
}

// Transpiler converts the source of one file into the target language.
type Transpiler interface {
	Transpile(ctx context.Context, path string, src []byte) ([]byte, error)
}

// Minifier compresses a concatenated bundle.
type Minifier interface {
	Minify(ctx context.Context, src []byte, options map[string]any) ([]byte, error)
}
