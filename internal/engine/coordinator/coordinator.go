// Package coordinator runs a single incremental build: expand, fingerprint,
// check freshness, bundle, clean up and write.
package coordinator

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/zerr"
)

// Deps are the collaborators of a Coordinator.
type Deps struct {
	Expander      ports.PathExpander
	Fingerprinter ports.Fingerprinter
	Oracle        ports.StalenessOracle
	Janitor       ports.ArtifactJanitor
	Writer        ports.ArtifactWriter
	Bundler       ports.Bundler
	Logger        ports.Logger
	Tracer        ports.Tracer

	// Bundlers rebuilds the bundler when a call overrides the configuration.
	// When nil, Bundler serves every call.
	Bundlers ports.BundlerFactory
}

// Coordinator builds the artifact of one configuration.
// The configuration is immutable, so a Coordinator may be used from several goroutines.
type Coordinator struct {
	cfg  domain.Config
	root string
	deps Deps
}

// Plan is what a build would do without doing it.
type Plan struct {
	Files       domain.FileSet
	Fingerprint domain.Fingerprint
	Path        string
	Fresh       bool
}

// New creates a Coordinator for cfg. Relative paths resolve against root.
// It fails when the bundler cannot serve cfg.
func New(cfg domain.Config, root string, deps Deps) (*Coordinator, error) {
	if err := deps.Bundler.Check(cfg); err != nil {
		return nil, err
	}
	return &Coordinator{cfg: cfg, root: root, deps: deps}, nil
}

// Build produces the artifact, or keeps the existing one when it is fresh.
// Overrides apply to this call only. On failure the returned report has
// StatusFailed and carries the same error that is returned.
func (c *Coordinator) Build(ctx context.Context, overrides domain.Settings) (report *domain.Report, err error) {
	start := time.Now()
	ctx, span := c.deps.Tracer.Start(ctx, "build")
	defer span.End()

	report = &domain.Report{Path: c.cfg.Output}
	defer func() {
		report.Duration = time.Since(start)
	}()
	defer zerr.Defer(func(panicErr error) {
		report, err = c.fail(span, report, panicErr)
	})

	cfg, err := c.cfg.With(overrides)
	if err != nil {
		return c.fail(span, report, err)
	}
	report.Path = cfg.Output
	span.SetAttribute("output", cfg.Output)

	bundler, err := c.bundlerFor(cfg, overrides)
	if err != nil {
		return c.fail(span, report, err)
	}

	plan, err := c.plan(ctx, cfg)
	if err != nil {
		return c.fail(span, report, err)
	}
	report.Path = plan.Path
	report.Fingerprint = plan.Fingerprint
	report.Files = plan.Files
	span.SetAttribute("fingerprint", plan.Fingerprint)

	if plan.Fresh {
		report.Status = domain.StatusUnchanged
		span.SetAttribute("status", report.Status)
		c.deps.Logger.Info("identical", "path", plan.Path, "fingerprint", plan.Fingerprint)
		return report, nil
	}

	body, err := bundler.Bundle(ctx, plan.Files, cfg)
	if err != nil {
		return c.fail(span, report, err)
	}
	name := domain.ParseArtifactName(plan.Path)
	data := append([]byte(domain.MarkerLine(name.Ext, plan.Fingerprint)), body...)

	target := c.abs(plan.Path)
	existed, err := c.deps.Writer.Exists(target)
	if err != nil {
		return c.fail(span, report, err)
	}

	if cfg.Cleanup {
		result := c.deps.Janitor.Sweep(c.abs(cfg.Output), target)
		c.logCleanup(result)
		report.Deleted = result.Deleted
		report.CleanupErrors = result.Errors
	}

	if err := c.deps.Writer.Write(target, data); err != nil {
		return c.fail(span, report, err)
	}

	report.Status = domain.StatusCreated
	if existed {
		report.Status = domain.StatusOverwrote
	}
	span.SetAttribute("status", report.Status)
	c.deps.Logger.Info(string(report.Status),
		"path", plan.Path,
		"fingerprint", plan.Fingerprint,
		"files", plan.Files.Len(),
	)
	return report, nil
}

// Plan expands, fingerprints and checks freshness without writing anything.
func (c *Coordinator) Plan(ctx context.Context, overrides domain.Settings) (*Plan, error) {
	ctx, span := c.deps.Tracer.Start(ctx, "plan")
	defer span.End()

	cfg, err := c.cfg.With(overrides)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	plan, err := c.plan(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return plan, nil
}

// Clean deletes every artifact following the naming convention of the output,
// including the current one.
func (c *Coordinator) Clean(ctx context.Context, overrides domain.Settings) (domain.CleanupResult, error) {
	_, span := c.deps.Tracer.Start(ctx, "clean")
	defer span.End()

	cfg, err := c.cfg.With(overrides)
	if err != nil {
		span.RecordError(err)
		return domain.CleanupResult{}, err
	}

	result := c.deps.Janitor.Sweep(c.abs(cfg.Output), "")
	c.logCleanup(result)
	span.SetAttribute("deleted", len(result.Deleted))
	if err := result.Err(); err != nil {
		span.RecordError(err)
		return result, err
	}
	return result, nil
}

// bundlerFor returns the bundler serving cfg. Overridden tool settings need a
// bundler of their own, which must pass Check like the base one did in New.
func (c *Coordinator) bundlerFor(cfg domain.Config, overrides domain.Settings) (ports.Bundler, error) {
	if len(overrides) == 0 || c.deps.Bundlers == nil {
		return c.deps.Bundler, nil
	}
	bundler, err := c.deps.Bundlers.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := bundler.Check(cfg); err != nil {
		return nil, err
	}
	return bundler, nil
}

func (c *Coordinator) plan(ctx context.Context, cfg domain.Config) (*Plan, error) {
	files := c.deps.Expander.Expand(c.root, cfg.Dependencies, cfg.Paths)
	c.deps.Tracer.EmitFiles(ctx, files)

	fp, err := c.deps.Fingerprinter.Compute(files, cfg)
	if err != nil {
		return nil, err
	}

	path := domain.ResolveOutput(cfg.Output, fp, cfg.Fingerprint)
	fresh, err := c.deps.Oracle.IsFresh(c.abs(path), fp)
	if err != nil {
		// An unreadable artifact is rebuilt.
		c.deps.Logger.Warn("cannot read artifact, rebuilding", "path", path, "error", err.Error())
		fresh = false
	}

	return &Plan{Files: files, Fingerprint: fp, Path: path, Fresh: fresh}, nil
}

func (c *Coordinator) fail(span ports.Span, report *domain.Report, cause error) (*domain.Report, error) {
	err := errors.Join(domain.ErrBuildFailed, cause)
	report.Status = domain.StatusFailed
	report.Err = err
	span.SetAttribute("status", report.Status)
	span.RecordError(err)
	c.deps.Logger.Error(zerr.With(err, "path", report.Path))
	return report, err
}

func (c *Coordinator) logCleanup(result domain.CleanupResult) {
	for _, path := range result.Deleted {
		c.deps.Logger.Info("deleted", "path", path)
	}
	for _, err := range result.Errors {
		c.deps.Logger.Warn("cleanup failed", "error", err.Error())
	}
}

func (c *Coordinator) abs(path string) string {
	if filepath.IsAbs(path) || c.root == "" {
		return path
	}
	return filepath.Join(c.root, path)
}
