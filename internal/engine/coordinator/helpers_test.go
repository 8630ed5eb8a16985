package coordinator_test

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stitch/internal/adapters/bundle"
	"go.trai.ch/stitch/internal/adapters/fs"
	"go.trai.ch/stitch/internal/adapters/logger"
	"go.trai.ch/stitch/internal/adapters/telemetry"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/stitch/internal/engine/coordinator"
)

const root = "/project"

var baseTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

// project is an in-memory project wired to the real file system adapters.
type project struct {
	t       *testing.T
	fs      afero.Fs
	janitor *fs.Janitor
	clock   time.Time
}

func newProject(t *testing.T, files ...string) *project {
	t.Helper()
	p := &project{t: t, fs: afero.NewMemMapFs(), clock: baseTime}
	p.janitor = fs.NewJanitor(p.fs)
	for _, name := range files {
		p.write(name, "// "+name+"\n")
	}
	return p
}

// write creates or replaces a file with a modification time one second after the previous one.
func (p *project) write(name, content string) {
	p.t.Helper()
	path := filepath.Join(root, name)
	require.NoError(p.t, p.fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(p.t, afero.WriteFile(p.fs, path, []byte(content), 0o644))
	p.touch(name)
}

func (p *project) touch(name string) {
	p.t.Helper()
	p.clock = p.clock.Add(time.Second)
	path := filepath.Join(root, name)
	require.NoError(p.t, p.fs.Chtimes(path, p.clock, p.clock))
}

func (p *project) read(name string) string {
	p.t.Helper()
	data, err := afero.ReadFile(p.fs, filepath.Join(root, name))
	require.NoError(p.t, err)
	return string(data)
}

// artifacts lists the basenames in dir starting with prefix.
func (p *project) artifacts(dir, prefix string) []string {
	p.t.Helper()
	entries, err := afero.ReadDir(p.fs, filepath.Join(root, dir))
	require.NoError(p.t, err)
	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), prefix) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func (p *project) deps() coordinator.Deps {
	log := logger.New()
	log.SetOutput(io.Discard)
	return coordinator.Deps{
		Expander:      fs.NewExpander(p.fs, fs.NewWalker(p.fs)),
		Fingerprinter: fs.NewFingerprinter(p.fs),
		Oracle:        fs.NewOracle(p.fs),
		Janitor:       p.janitor,
		Writer:        fs.NewWriter(p.fs),
		Bundler:       bundle.NewConcatenator(p.fs),
		Logger:        log,
		Tracer:        telemetry.NewNoOpTracer(),
	}
}

func (p *project) coordinator(settings domain.Settings) *coordinator.Coordinator {
	p.t.Helper()
	cfg, err := domain.NewConfig(domain.MergeSettings(domain.DefaultSettings(), settings))
	require.NoError(p.t, err)
	c, err := coordinator.New(cfg, root, p.deps())
	require.NoError(p.t, err)
	return c
}

// factoryCoordinator creates a Coordinator whose bundlers come from toolFactory.
func (p *project) factoryCoordinator(settings domain.Settings) *coordinator.Coordinator {
	p.t.Helper()
	cfg, err := domain.NewConfig(domain.MergeSettings(domain.DefaultSettings(), settings))
	require.NoError(p.t, err)
	c, err := coordinator.NewFactory(p.deps(), toolFactory{fs: p.fs}).New(cfg, root)
	require.NoError(p.t, err)
	return c
}

// toolFactory builds Concatenators that upper-case the bundle when a minifier is configured.
type toolFactory struct {
	fs afero.Fs
}

func (f toolFactory) New(cfg domain.Config) (ports.Bundler, error) {
	if len(cfg.Minifier) == 0 {
		return bundle.NewConcatenator(f.fs), nil
	}
	return bundle.NewConcatenator(f.fs, bundle.WithMinifier(upcase{})), nil
}

type upcase struct{}

func (upcase) Minify(_ context.Context, src []byte, _ map[string]any) ([]byte, error) {
	return bytes.ToUpper(src), nil
}
