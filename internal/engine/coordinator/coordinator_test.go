package coordinator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stitch/internal/adapters/telemetry"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports/mocks"
	"go.trai.ch/stitch/internal/engine/coordinator"
	"go.uber.org/mock/gomock"
)

type mockDeps struct {
	expander      *mocks.MockPathExpander
	fingerprinter *mocks.MockFingerprinter
	oracle        *mocks.MockStalenessOracle
	janitor       *mocks.MockArtifactJanitor
	writer        *mocks.MockArtifactWriter
	bundler       *mocks.MockBundler
	logger        *mocks.MockLogger
}

func newMockDeps(ctrl *gomock.Controller) *mockDeps {
	return &mockDeps{
		expander:      mocks.NewMockPathExpander(ctrl),
		fingerprinter: mocks.NewMockFingerprinter(ctrl),
		oracle:        mocks.NewMockStalenessOracle(ctrl),
		janitor:       mocks.NewMockArtifactJanitor(ctrl),
		writer:        mocks.NewMockArtifactWriter(ctrl),
		bundler:       mocks.NewMockBundler(ctrl),
		logger:        mocks.NewMockLogger(ctrl),
	}
}

func (m *mockDeps) deps() coordinator.Deps {
	return coordinator.Deps{
		Expander:      m.expander,
		Fingerprinter: m.fingerprinter,
		Oracle:        m.oracle,
		Janitor:       m.janitor,
		Writer:        m.writer,
		Bundler:       m.bundler,
		Logger:        m.logger,
		Tracer:        telemetry.NewNoOpTracer(),
	}
}

func mustConfig(t *testing.T, settings domain.Settings) domain.Config {
	t.Helper()
	cfg, err := domain.NewConfig(domain.MergeSettings(domain.DefaultSettings(), settings))
	require.NoError(t, err)
	return cfg
}

func newCoordinator(t *testing.T, m *mockDeps, settings domain.Settings) *coordinator.Coordinator {
	t.Helper()
	cfg := mustConfig(t, settings)
	m.bundler.EXPECT().Check(gomock.Any()).Return(nil)
	c, err := coordinator.New(cfg, "/project", m.deps())
	require.NoError(t, err)
	return c
}

func TestNew_BundlerCheckFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockDeps(ctrl)
	m.bundler.EXPECT().Check(gomock.Any()).Return(domain.ErrMinifierUnavailable)

	_, err := coordinator.New(mustConfig(t, domain.Settings{"minify": true}), "/project", m.deps())
	require.ErrorIs(t, err, domain.ErrMinifierUnavailable)
}

func TestBuild_FreshArtifactIsNotTouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockDeps(ctrl)
	c := newCoordinator(t, m, domain.Settings{"paths": "src", "output": "dist/all.js", "fingerprint": true})

	files := domain.FileSet{"/project/src/a.js"}
	m.expander.EXPECT().Expand("/project", gomock.Nil(), []string{"src"}).Return(files)
	m.fingerprinter.EXPECT().Compute(files, gomock.Any()).Return(domain.Fingerprint("abc123"), nil)
	m.oracle.EXPECT().IsFresh("/project/dist/all-abc123.js", domain.Fingerprint("abc123")).Return(true, nil)
	m.logger.EXPECT().Info("identical", "path", "dist/all-abc123.js", "fingerprint", domain.Fingerprint("abc123"))

	report, err := c.Build(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnchanged, report.Status)
	assert.Equal(t, "dist/all-abc123.js", report.Path)
	assert.True(t, report.OK())
}

func TestBuild_StaleArtifactIsRebuilt(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockDeps(ctrl)
	c := newCoordinator(t, m, domain.Settings{"paths": "src", "output": "dist/all.js", "fingerprint": true})

	files := domain.FileSet{"/project/src/a.js"}
	m.expander.EXPECT().Expand(gomock.Any(), gomock.Any(), gomock.Any()).Return(files)
	m.fingerprinter.EXPECT().Compute(files, gomock.Any()).Return(domain.Fingerprint("abc123"), nil)
	m.oracle.EXPECT().IsFresh(gomock.Any(), gomock.Any()).Return(false, nil)

	gomock.InOrder(
		m.bundler.EXPECT().Bundle(gomock.Any(), files, gomock.Any()).Return([]byte("var a;\n"), nil),
		m.writer.EXPECT().Exists("/project/dist/all-abc123.js").Return(false, nil),
		m.janitor.EXPECT().
			Sweep("/project/dist/all.js", "/project/dist/all-abc123.js").
			Return(domain.CleanupResult{Deleted: []string{"/project/dist/all-old.js"}}),
		m.writer.EXPECT().Write("/project/dist/all-abc123.js", []byte("/* Build fingerprint: abc123 */\nvar a;\n")).Return(nil),
	)
	m.logger.EXPECT().Info("deleted", "path", "/project/dist/all-old.js")
	m.logger.EXPECT().Info("created", "path", "dist/all-abc123.js", "fingerprint", domain.Fingerprint("abc123"), "files", 1)

	report, err := c.Build(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCreated, report.Status)
	assert.Equal(t, []string{"/project/dist/all-old.js"}, report.Deleted)
}

func TestBuild_BundleFailureLeavesArtifactsAlone(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockDeps(ctrl)
	c := newCoordinator(t, m, domain.Settings{"paths": "src", "fingerprint": true})

	bundleErr := errors.New("syntax error")
	m.expander.EXPECT().Expand(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.FileSet{"/project/src/a.js"})
	m.fingerprinter.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(domain.Fingerprint("abc123"), nil)
	m.oracle.EXPECT().IsFresh(gomock.Any(), gomock.Any()).Return(false, nil)
	m.bundler.EXPECT().Bundle(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, bundleErr)
	m.logger.EXPECT().Error(gomock.Any())

	report, err := c.Build(context.Background(), nil)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrBuildFailed)
	require.ErrorIs(t, err, bundleErr)
	assert.Equal(t, domain.StatusFailed, report.Status)
	assert.Equal(t, err, report.Err)
	assert.Equal(t, "all-abc123.js", report.Path)
	assert.False(t, report.OK())
}

func TestBuild_FingerprintFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockDeps(ctrl)
	c := newCoordinator(t, m, domain.Settings{"paths": "src"})

	m.expander.EXPECT().Expand(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.FileSet{"/project/src/a.js"})
	m.fingerprinter.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(domain.Fingerprint(""), domain.ErrInputVanished)
	m.logger.EXPECT().Error(gomock.Any())

	report, err := c.Build(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrInputVanished)
	assert.Equal(t, domain.StatusFailed, report.Status)
	assert.Equal(t, "all.js", report.Path)
}

func TestBuild_WriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockDeps(ctrl)
	c := newCoordinator(t, m, domain.Settings{"paths": "src", "cleanup": false})

	m.expander.EXPECT().Expand(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.FileSet{})
	m.fingerprinter.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(domain.Fingerprint("abc123"), nil)
	m.oracle.EXPECT().IsFresh(gomock.Any(), gomock.Any()).Return(false, nil)
	m.bundler.EXPECT().Bundle(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.writer.EXPECT().Exists(gomock.Any()).Return(true, nil)
	m.writer.EXPECT().Write(gomock.Any(), gomock.Any()).Return(domain.ErrWriteFailed)
	m.logger.EXPECT().Error(gomock.Any())

	report, err := c.Build(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrWriteFailed)
	assert.Equal(t, domain.StatusFailed, report.Status)
}

func TestBuild_PanicBecomesFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockDeps(ctrl)
	c := newCoordinator(t, m, domain.Settings{"paths": "src"})

	m.expander.EXPECT().Expand(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.FileSet{})
	m.fingerprinter.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(domain.Fingerprint("abc123"), nil)
	m.oracle.EXPECT().IsFresh(gomock.Any(), gomock.Any()).Return(false, nil)
	m.bundler.EXPECT().Bundle(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, domain.FileSet, domain.Config) ([]byte, error) {
			panic("minifier exploded")
		})
	m.logger.EXPECT().Error(gomock.Any())

	report, err := c.Build(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrBuildFailed)
	assert.Contains(t, err.Error(), "minifier exploded")
	require.NotNil(t, report)
	assert.Equal(t, domain.StatusFailed, report.Status)
	assert.Positive(t, report.Duration)
}

func TestBuild_UnreadableArtifactIsRebuilt(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockDeps(ctrl)
	c := newCoordinator(t, m, domain.Settings{"paths": "src", "cleanup": false})

	m.expander.EXPECT().Expand(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.FileSet{})
	m.fingerprinter.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(domain.Fingerprint("abc123"), nil)
	m.oracle.EXPECT().IsFresh(gomock.Any(), gomock.Any()).Return(false, errors.New("permission denied"))
	m.logger.EXPECT().Warn("cannot read artifact, rebuilding", "path", "all.js", "error", "permission denied")
	m.bundler.EXPECT().Bundle(gomock.Any(), gomock.Any(), gomock.Any()).Return([]byte{}, nil)
	m.writer.EXPECT().Exists(gomock.Any()).Return(true, nil)
	m.writer.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil)
	m.logger.EXPECT().Info("overwrote", gomock.Any())

	report, err := c.Build(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOverwrote, report.Status)
}

func TestBuild_CleanupErrorsDoNotFailTheBuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockDeps(ctrl)
	c := newCoordinator(t, m, domain.Settings{"paths": "src", "fingerprint": true})

	deleteErr := errors.New("read-only file system")
	m.expander.EXPECT().Expand(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.FileSet{})
	m.fingerprinter.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(domain.Fingerprint("abc123"), nil)
	m.oracle.EXPECT().IsFresh(gomock.Any(), gomock.Any()).Return(false, nil)
	m.bundler.EXPECT().Bundle(gomock.Any(), gomock.Any(), gomock.Any()).Return([]byte{}, nil)
	m.writer.EXPECT().Exists(gomock.Any()).Return(false, nil)
	m.janitor.EXPECT().Sweep(gomock.Any(), gomock.Any()).Return(domain.CleanupResult{Errors: []error{deleteErr}})
	m.logger.EXPECT().Warn("cleanup failed", "error", "read-only file system")
	m.writer.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil)
	m.logger.EXPECT().Info("created", gomock.Any())

	report, err := c.Build(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCreated, report.Status)
	assert.Equal(t, []error{deleteErr}, report.CleanupErrors)
}

func TestBuild_InvalidOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockDeps(ctrl)
	c := newCoordinator(t, m, domain.Settings{"paths": "src"})
	m.logger.EXPECT().Error(gomock.Any())

	report, err := c.Build(context.Background(), domain.Settings{"fingerprint": "sometimes"})
	require.ErrorIs(t, err, domain.ErrInvalidSetting)
	assert.Equal(t, domain.StatusFailed, report.Status)
}

func TestClean_ReportsErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockDeps(ctrl)
	c := newCoordinator(t, m, domain.Settings{"output": "dist/all.js"})

	deleteErr := errors.New("busy")
	m.janitor.EXPECT().Sweep("/project/dist/all.js", "").Return(domain.CleanupResult{
		Deleted: []string{"/project/dist/all-1.js"},
		Errors:  []error{deleteErr},
	})
	m.logger.EXPECT().Info("deleted", "path", "/project/dist/all-1.js")
	m.logger.EXPECT().Warn("cleanup failed", "error", "busy")

	result, err := c.Clean(context.Background(), nil)
	require.ErrorIs(t, err, deleteErr)
	var cleanupErr *domain.CleanupError
	require.ErrorAs(t, err, &cleanupErr)
	assert.Equal(t, []string{"/project/dist/all-1.js"}, result.Deleted)
}

func TestFactory_New(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockDeps(ctrl)
	bundlers := mocks.NewMockBundlerFactory(ctrl)
	cfg := mustConfig(t, domain.Settings{"output": "dist/all.js"})

	bundlers.EXPECT().New(cfg).Return(m.bundler, nil)
	m.bundler.EXPECT().Check(cfg).Return(nil)

	c, err := coordinator.NewFactory(m.deps(), bundlers).New(cfg, "/project")
	require.NoError(t, err)
	assert.NotNil(t, c)
}
