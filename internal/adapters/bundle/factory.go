package bundle

import (
	"path/filepath"

	"github.com/spf13/afero"
	"go.trai.ch/stitch/internal/adapters/shell"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
)

var _ ports.BundlerFactory = (*Factory)(nil)

// Factory builds Concatenators whose tools are the shell commands named in a Config.
type Factory struct {
	fs     afero.Fs
	runner *shell.Runner
	root   string
}

// NewFactory creates a Factory. Tools run in root with root/node_modules/.bin on PATH.
func NewFactory(fsys afero.Fs, runner *shell.Runner, root string) *Factory {
	return &Factory{fs: fsys, runner: runner, root: root}
}

// New returns a Bundler serving cfg.
func (f *Factory) New(cfg domain.Config) (ports.Bundler, error) {
	opts := []Option{WithTracer(f.runner.Tracer)}

	if len(cfg.Minifier) > 0 {
		opts = append(opts, WithMinifier(shell.NewMinifier(f.command(cfg.Minifier))))
	}
	for ext, argv := range cfg.Transpilers {
		if len(argv) == 0 {
			continue
		}
		opts = append(opts, WithTranspiler(ext, shell.NewTranspiler(f.command(argv))))
	}

	return NewConcatenator(f.fs, opts...), nil
}

func (f *Factory) command(argv []string) *shell.Command {
	var opts []shell.CommandOption
	if f.root != "" {
		opts = append(opts,
			shell.WithDir(f.root),
			shell.WithPathPrefix(filepath.Join(f.root, "node_modules", ".bin")),
		)
	}
	return f.runner.Command(argv, opts...)
}
