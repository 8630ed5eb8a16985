package commands_test

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stitch/cmd/stitch/commands"
	"go.trai.ch/stitch/internal/adapters/bundle"
	"go.trai.ch/stitch/internal/adapters/config"
	"go.trai.ch/stitch/internal/adapters/fs"
	"go.trai.ch/stitch/internal/adapters/logger"
	"go.trai.ch/stitch/internal/adapters/telemetry"
	"go.trai.ch/stitch/internal/app"
	"go.trai.ch/stitch/internal/build"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/stitch/internal/engine/coordinator"
)

const root = "/project"

type bundlerFactory struct {
	fs afero.Fs
}

func (f bundlerFactory) New(domain.Config) (ports.Bundler, error) {
	return bundle.NewConcatenator(f.fs), nil
}

type harness struct {
	fs  afero.Fs
	out *bytes.Buffer
	cli *commands.CLI
}

func newHarness(t *testing.T, files map[string]string) *harness {
	t.Helper()
	return newHarnessOn(t, populate(t, files))
}

func populate(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	mtime := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
		require.NoError(t, fsys.Chtimes(path, mtime, mtime))
	}
	return fsys
}

func newHarnessOn(t *testing.T, fsys afero.Fs) *harness {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	log := logger.New()
	log.SetOutput(io.Discard)

	factory := coordinator.NewFactory(coordinator.Deps{
		Expander:      fs.NewExpander(fsys, fs.NewWalker(fsys)),
		Fingerprinter: fs.NewFingerprinter(fsys),
		Oracle:        fs.NewOracle(fsys),
		Janitor:       fs.NewJanitor(fsys),
		Writer:        fs.NewWriter(fsys),
		Logger:        log,
		Tracer:        telemetry.NewNoOpTracer(),
	}, bundlerFactory{fs: fsys})
	a := app.New(fsys, config.NewLoader(fsys, log, config.WithRoot(root)), factory, log, root)

	h := &harness{fs: fsys, out: &bytes.Buffer{}, cli: commands.New(a, log)}
	h.cli.SetOutput(h.out)
	return h
}

func (h *harness) run(args ...string) error {
	h.out.Reset()
	h.cli.SetArgs(args)
	return h.cli.Execute(context.Background())
}

func (h *harness) lines() []string {
	return strings.Split(strings.TrimSpace(h.out.String()), "\n")
}

func TestBuild_CreatedThenIdentical(t *testing.T) {
	h := newHarness(t, map[string]string{
		"stitch.yml": "paths: src\noutput: dist/all.js\n",
		"src/a.js":   "var a;\n",
	})

	require.NoError(t, h.run("build"))
	assert.Equal(t, []string{"✓ created dist/all.js"}, h.lines())

	require.NoError(t, h.run("build"))
	assert.Equal(t, []string{"● identical dist/all.js"}, h.lines())
}

func TestBuild_FlagsOverrideConfig(t *testing.T) {
	h := newHarness(t, map[string]string{
		"stitch.yml": "paths: src\noutput: dist/all.js\n",
		"src/a.js":   "var a;\n",
	})

	require.NoError(t, h.run("build", "--output", "public/app.js", "--fingerprint"))
	lines := h.lines()
	require.Len(t, lines, 1)
	assert.Regexp(t, `^✓ created public/app-[0-9a-f]{16}\.js$`, lines[0])
}

func TestBuild_SetOverride(t *testing.T) {
	h := newHarness(t, map[string]string{"src/a.js": "var a;\n"})

	require.NoError(t, h.run("build", "--set", "paths=[src]", "--set", "output=bundle.js"))
	assert.Equal(t, []string{"✓ created bundle.js"}, h.lines())

	data, err := afero.ReadFile(h.fs, "/project/bundle.js")
	require.NoError(t, err)
	assert.Contains(t, string(data), "var a;")
}

func TestBuild_SetWithoutValue(t *testing.T) {
	h := newHarness(t, nil)

	err := h.run("build", "--set", "output")
	require.ErrorIs(t, err, domain.ErrInvalidSetting)
}

func TestBuild_ReportsDeletedArtifacts(t *testing.T) {
	h := newHarness(t, map[string]string{
		"stitch.yml":       "paths: src\noutput: dist/all.js\nfingerprint: true\n",
		"src/a.js":         "var a;\n",
		"dist/all-dead.js": "old",
	})

	require.NoError(t, h.run("build"))
	lines := h.lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "! deleted dist/all-dead.js", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "✓ created dist/all-"))
}

func TestBuild_Failure(t *testing.T) {
	fsys := populate(t, map[string]string{
		"stitch.yml": "paths: src\noutput: dist/all.js\n",
		"src/a.js":   "var a;\n",
	})
	h := newHarnessOn(t, afero.NewReadOnlyFs(fsys))

	err := h.run("build")
	require.ErrorIs(t, err, domain.ErrBuildFailed)
	assert.True(t, strings.HasPrefix(h.lines()[0], "✗ failed to write dist/all.js: "))
}

func TestBuild_InvalidOverride(t *testing.T) {
	h := newHarness(t, map[string]string{"stitch.yml": "paths: src\n"})

	err := h.run("build", "--set", "cleanup=sometimes")
	require.ErrorIs(t, err, domain.ErrInvalidSetting)
	assert.Empty(t, strings.TrimSpace(h.out.String()))
}

func TestBuild_MinifyWithoutMinifier(t *testing.T) {
	h := newHarness(t, map[string]string{
		"stitch.yml": "paths: src\n",
		"src/a.js":   "var a;\n",
	})

	err := h.run("build", "--minify")
	require.ErrorIs(t, err, domain.ErrMinifierUnavailable)
}

func TestBuild_Plain(t *testing.T) {
	h := newHarness(t, map[string]string{
		"stitch.yml":       "paths: src\noutput: dist/all.js\nfingerprint: true\n",
		"src/a.js":         "var a;\n",
		"dist/all-dead.js": "old",
	})

	require.NoError(t, h.run("build", "--plain"))
	lines := h.lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "stitch deleted dist/all-dead.js", lines[0])
	assert.Regexp(t, `^stitch created dist/all-[0-9a-f]{16}\.js$`, lines[1])

	require.NoError(t, h.run("build", "--plain"))
	assert.Regexp(t, `^stitch identical dist/all-[0-9a-f]{16}\.js$`, h.lines()[0])
}

func TestVerboseFlag(t *testing.T) {
	h := newHarness(t, map[string]string{
		"stitch.yml": "paths: src\n",
		"src/a.js":   "var a;\n",
	})

	require.NoError(t, h.run("build", "--verbose"))
	assert.Equal(t, []string{"✓ created all.js"}, h.lines())
}

func TestBuild_MissingExplicitConfig(t *testing.T) {
	h := newHarness(t, nil)

	err := h.run("build", "-c", "missing.yml")
	require.ErrorIs(t, err, domain.ErrConfigReadFailed)
}

func TestFiles(t *testing.T) {
	h := newHarness(t, map[string]string{
		"stitch.yml":   "dependencies: [lib/first.js]\npaths: lib\n",
		"lib/a.js":     "",
		"lib/first.js": "",
	})

	require.NoError(t, h.run("files"))
	assert.Equal(t, []string{"lib/first.js", "lib/a.js"}, h.lines())
}

func TestFingerprint(t *testing.T) {
	h := newHarness(t, map[string]string{
		"stitch.yml": "paths: src\nfingerprint: true\n",
		"src/a.js":   "var a;\n",
	})

	require.NoError(t, h.run("fingerprint"))
	lines := h.lines()
	require.Len(t, lines, 4)
	assert.Regexp(t, `^fingerprint [0-9a-f]{16}$`, lines[0])
	assert.Regexp(t, `^artifact    all-[0-9a-f]{16}\.js$`, lines[1])
	assert.Equal(t, "files       1", lines[2])
	assert.Equal(t, "fresh       false", lines[3])
}

func TestClean(t *testing.T) {
	h := newHarness(t, map[string]string{
		"stitch.yml":       "output: dist/all.js\n",
		"dist/all-1234.js": "",
		"dist/other.js":    "",
	})

	require.NoError(t, h.run("clean"))
	assert.Equal(t, []string{"! deleted dist/all-1234.js"}, h.lines())
}

func TestVersion(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, h.run("version"))
	assert.Equal(t, "stitch version "+build.Version+"\n", h.out.String())
}

func TestVersionFlag(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, h.run("-v"))
	assert.Equal(t, "stitch version "+build.Version+"\n", h.out.String())
}
