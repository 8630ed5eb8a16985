// Package config provides the configuration loader for stitch.
package config

import (
	"errors"
	"maps"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	fs        afero.Fs
	logger    ports.Logger
	root      string
	namespace string
}

// Option configures a Loader.
type Option func(*Loader)

// WithRoot sets the directory that config references in programmatic layers
// are resolved against. It defaults to the current directory.
func WithRoot(dir string) Option {
	return func(l *Loader) {
		l.root = dir
	}
}

// WithNamespace sets the key that may wrap a configuration document.
func WithNamespace(namespace string) Option {
	return func(l *Loader) {
		l.namespace = domain.NormalizeKey(namespace)
	}
}

// NewLoader creates a new Loader.
func NewLoader(fsys afero.Fs, logger ports.Logger, opts ...Option) *Loader {
	l := &Loader{
		fs:        fsys,
		logger:    logger,
		root:      ".",
		namespace: DefaultNamespace,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the configuration file at path and layers overrides on top.
// An empty path yields the defaults with overrides applied.
func (l *Loader) Load(path string, overrides domain.Settings) (domain.Config, error) {
	base := domain.Settings{}
	if path != "" {
		base[domain.KeyConfig] = path
	}
	return l.Resolve(base, overrides)
}

// Resolve merges, in increasing precedence, the defaults, base, the file base
// references and overrides. A config reference inside overrides is loaded
// beneath the remaining override values.
func (l *Loader) Resolve(base, overrides domain.Settings) (domain.Config, error) {
	settings := domain.DefaultSettings()

	layer, err := l.expand(domain.NormalizeSettings(base), l.root, map[string]bool{}, true)
	if err != nil {
		return domain.Config{}, err
	}
	settings = domain.MergeSettings(settings, layer)

	layer, err = l.expand(domain.NormalizeSettings(overrides), l.root, map[string]bool{}, false)
	if err != nil {
		return domain.Config{}, err
	}
	settings = domain.MergeSettings(settings, layer)
	delete(settings, domain.KeyConfig)

	cfg, err := domain.NewConfig(settings)
	if err != nil {
		return domain.Config{}, err
	}

	for _, key := range slices.Sorted(maps.Keys(cfg.Extra)) {
		l.logger.Warn("unknown setting", "key", key)
	}
	return cfg, nil
}

// expand replaces a layer's config reference with the referenced file's settings.
// When fileWins is set the file overrides the layer, otherwise the layer overrides the file.
func (l *Loader) expand(layer domain.Settings, dir string, visiting map[string]bool, fileWins bool) (domain.Settings, error) {
	ref, ok := layer[domain.KeyConfig]
	if !ok {
		return layer, nil
	}

	rest := layer.Clone()
	delete(rest, domain.KeyConfig)

	if ref == nil || ref == "" {
		return rest, nil
	}
	name, isString := ref.(string)
	if !isString {
		err := zerr.With(zerr.Wrap(domain.ErrInvalidSetting, ""), "key", domain.KeyConfig)
		return nil, zerr.With(err, "value", ref)
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	file, err := l.loadFile(path, visiting)
	if err != nil {
		return nil, err
	}

	if fileWins {
		return domain.MergeSettings(rest, file), nil
	}
	return domain.MergeSettings(file, rest), nil
}

// loadFile reads one configuration file and resolves its own references
// relative to its directory.
func (l *Loader) loadFile(path string, visiting map[string]bool) (domain.Settings, error) {
	key := filepath.Clean(path)
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}
	if visiting[key] {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigCycle, ""), "path", path)
	}
	visiting[key] = true
	defer delete(visiting, key)

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", path)
	}

	settings, err := decodeDocument(data, l.namespace)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigParseFailed, err), "path", path)
	}

	return l.expand(settings, filepath.Dir(path), visiting, false)
}
