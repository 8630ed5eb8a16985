// Package bundle produces artifact bodies by concatenating source files.
package bundle

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Bundler = (*Concatenator)(nil)

// Concatenator joins files in order, transpiling by extension and minifying on request.
type Concatenator struct {
	fs          afero.Fs
	tracer      ports.Tracer
	minifier    ports.Minifier
	transpilers map[string]ports.Transpiler
}

// Option configures a Concatenator.
type Option func(*Concatenator)

// WithMinifier sets the minifier used when minification is enabled.
func WithMinifier(m ports.Minifier) Option {
	return func(c *Concatenator) {
		c.minifier = m
	}
}

// WithTranspiler registers t for files with extension ext (".coffee" or "coffee").
func WithTranspiler(ext string, t ports.Transpiler) Option {
	return func(c *Concatenator) {
		c.transpilers[normalizeExt(ext)] = t
	}
}

// WithTracer sets the tracer used for bundling spans.
func WithTracer(t ports.Tracer) Option {
	return func(c *Concatenator) {
		c.tracer = t
	}
}

// NewConcatenator creates a Concatenator reading sources from fsys.
func NewConcatenator(fsys afero.Fs, opts ...Option) *Concatenator {
	c := &Concatenator{
		fs:          fsys,
		minifier:    NopMinifier{},
		transpilers: make(map[string]ports.Transpiler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check reports whether the Concatenator can serve cfg.
func (c *Concatenator) Check(cfg domain.Config) error {
	if _, nop := c.minifier.(NopMinifier); cfg.Minify && nop {
		return zerr.With(zerr.Wrap(domain.ErrMinifierUnavailable, ""), "output", cfg.Output)
	}
	return nil
}

// Bundle returns the concatenated body of files.
func (c *Concatenator) Bundle(ctx context.Context, files domain.FileSet, cfg domain.Config) ([]byte, error) {
	if c.tracer != nil {
		var span ports.Span
		ctx, span = c.tracer.Start(ctx, "bundle", ports.WithAttribute("files", files.Len()))
		defer span.End()
	}

	parts := make([][]byte, 0, len(files))
	for _, path := range files {
		src, err := afero.ReadFile(c.fs, path)
		if err != nil {
			return nil, zerr.With(errors.Join(domain.ErrBundleFailed, err), "path", path)
		}

		if t, ok := c.transpilers[normalizeExt(filepath.Ext(path))]; ok {
			src, err = t.Transpile(ctx, path, src)
			if err != nil {
				return nil, zerr.With(errors.Join(domain.ErrBundleFailed, err), "path", path)
			}
		}
		parts = append(parts, bytes.TrimSuffix(src, []byte("\n")))
	}

	out := bytes.Join(parts, []byte("\n"))
	if len(parts) > 0 {
		out = append(out, '\n')
	}

	if !cfg.Minify {
		return out, nil
	}
	if err := c.Check(cfg); err != nil {
		return nil, err
	}
	minified, err := c.minifier.Minify(ctx, out, cfg.MinifyOptions)
	if err != nil {
		return nil, errors.Join(domain.ErrBundleFailed, err)
	}
	return minified, nil
}

// NopMinifier returns its input unchanged. It stands in when no minifier is configured.
type NopMinifier struct{}

// Minify returns src.
func (NopMinifier) Minify(_ context.Context, src []byte, _ map[string]any) ([]byte, error) {
	return src, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
