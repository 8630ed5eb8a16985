// Package app implements the application layer for stitch.
package app

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/spf13/afero"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/stitch/internal/engine/coordinator"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// DefaultConfigFile is the configuration file used when none is named.
const DefaultConfigFile = "stitch.yml"

// CoordinatorFactory creates a Coordinator for a resolved configuration.
type CoordinatorFactory interface {
	New(cfg domain.Config, root string) (*coordinator.Coordinator, error)
}

// Options select the configuration files and overrides of a command.
type Options struct {
	// Configs are the configuration files to use, in order.
	Configs []string
	// Explicit marks Configs as named by the user. A missing default file
	// falls back to the built-in defaults, a missing explicit file is an error.
	Explicit bool
	// Overrides are layered over every configuration when it is loaded, so
	// they reach config references and the bundler like file settings do.
	Overrides domain.Settings
}

// App represents the main application logic.
type App struct {
	fs           afero.Fs
	loader       ports.ConfigLoader
	coordinators CoordinatorFactory
	logger       ports.Logger
	root         string
}

// New creates a new App instance. Relative paths resolve against root.
func New(
	fsys afero.Fs,
	loader ports.ConfigLoader,
	coordinators CoordinatorFactory,
	logger ports.Logger,
	root string,
) *App {
	return &App{
		fs:           fsys,
		loader:       loader,
		coordinators: coordinators,
		logger:       logger,
		root:         root,
	}
}

// Build builds every configuration concurrently and returns one report per
// configuration in order. The error joins every failed build.
func (a *App) Build(ctx context.Context, opts Options) ([]*domain.Report, error) {
	coords, err := a.coordinatorsFor(opts)
	if err != nil {
		return nil, err
	}

	reports := make([]*domain.Report, len(coords))
	errs := make([]error, len(coords))

	g, ctx := errgroup.WithContext(ctx)
	for i, c := range coords {
		g.Go(func() error {
			reports[i], errs[i] = c.Build(ctx, nil)
			return nil
		})
	}
	_ = g.Wait()

	return reports, errors.Join(errs...)
}

// Plan returns what a build of the first configuration would do.
func (a *App) Plan(ctx context.Context, opts Options) (*coordinator.Plan, error) {
	c, err := a.first(opts)
	if err != nil {
		return nil, err
	}
	return c.Plan(ctx, nil)
}

// Files returns the input files of the first configuration.
func (a *App) Files(ctx context.Context, opts Options) (domain.FileSet, error) {
	plan, err := a.Plan(ctx, opts)
	if err != nil {
		return nil, err
	}
	return plan.Files, nil
}

// Clean deletes the artifacts of every configuration and returns the deleted paths.
func (a *App) Clean(ctx context.Context, opts Options) ([]string, error) {
	coords, err := a.coordinatorsFor(opts)
	if err != nil {
		return nil, err
	}

	var (
		deleted []string
		errs    []error
	)
	for _, c := range coords {
		result, err := c.Clean(ctx, nil)
		deleted = append(deleted, result.Deleted...)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return deleted, errors.Join(errs...)
}

func (a *App) first(opts Options) (*coordinator.Coordinator, error) {
	if len(opts.Configs) > 1 {
		opts.Configs = opts.Configs[:1]
	}
	coords, err := a.coordinatorsFor(opts)
	if err != nil {
		return nil, err
	}
	return coords[0], nil
}

func (a *App) coordinatorsFor(opts Options) ([]*coordinator.Coordinator, error) {
	paths := opts.Configs
	if len(paths) == 0 {
		paths = []string{DefaultConfigFile}
	}

	coords := make([]*coordinator.Coordinator, 0, len(paths))
	for _, path := range paths {
		cfg, err := a.load(path, opts.Explicit, opts.Overrides)
		if err != nil {
			return nil, err
		}
		c, err := a.coordinators.New(cfg, a.root)
		if err != nil {
			return nil, zerr.With(err, "config", path)
		}
		coords = append(coords, c)
	}
	return coords, nil
}

func (a *App) load(path string, explicit bool, overrides domain.Settings) (domain.Config, error) {
	if !explicit {
		exists, err := afero.Exists(a.fs, a.abs(path))
		if err != nil {
			return domain.Config{}, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", path)
		}
		if !exists {
			a.logger.Info("no config file, using defaults", "path", path)
			path = ""
		}
	}
	return a.loader.Load(path, overrides)
}

func (a *App) abs(path string) string {
	if filepath.IsAbs(path) || a.root == "" {
		return path
	}
	return filepath.Join(a.root, path)
}

// Root returns the directory relative paths resolve against.
func (a *App) Root() string {
	return a.root
}
