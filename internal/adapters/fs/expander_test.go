package fs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/stitch/internal/adapters/fs"
	"go.trai.ch/stitch/internal/core/domain"
)

func newExpander(t *testing.T, files ...string) *fs.Expander {
	t.Helper()
	fsys := newFs(t, files...)
	return fs.NewExpander(fsys, fs.NewWalker(fsys))
}

func TestExpander_DirectoryExpansion(t *testing.T) {
	e := newExpander(t,
		"src/a.js",
		"src/b.js",
		"src/c.js",
		"src/sub/d.js",
		"src/sub/e.js",
	)

	got := e.Expand(root, nil, []string{"src"})

	assert.Equal(t, 5, got.Len())
	assert.Equal(t, domain.FileSet(abs("src/a.js", "src/b.js", "src/c.js", "src/sub/d.js", "src/sub/e.js")), got)
}

func TestExpander_DependenciesFirstAndDeduplicated(t *testing.T) {
	e := newExpander(t,
		"vendor/jquery.js",
		"vendor/plugins/one.js",
		"app/main.js",
		"app/util.js",
	)

	got := e.Expand(root,
		[]string{"vendor/jquery.js", "vendor", "app/util.js"},
		[]string{"app"},
	)

	assert.Equal(t, domain.FileSet(abs(
		"vendor/jquery.js",
		"vendor/plugins/one.js",
		"app/util.js",
		"app/main.js",
	)), got)
}

func TestExpander_Globs(t *testing.T) {
	e := newExpander(t, "lib/a.js", "lib/b.css", "lib/nested/c.js")

	got := e.Expand(root, []string{"lib/*.js", "lib/**/*.js"}, nil)

	assert.Equal(t, domain.FileSet(abs("lib/a.js", "lib/nested/c.js")), got)
}

func TestExpander_PathRootFile(t *testing.T) {
	e := newExpander(t, "single.js")

	got := e.Expand(root, nil, []string{"single.js"})

	assert.Equal(t, domain.FileSet(abs("single.js")), got)
}

func TestExpander_ExplicitHiddenFile(t *testing.T) {
	e := newExpander(t, "conf/.env.js", "conf/app.js")

	assert.Equal(t, domain.FileSet(abs("conf/app.js")), e.Expand(root, nil, []string{"conf"}))
	assert.Equal(t, domain.FileSet(abs("conf/.env.js")), e.Expand(root, []string{"conf/.env.js"}, nil))
}

func TestExpander_AbsoluteEntries(t *testing.T) {
	e := newExpander(t, "a.js")

	got := e.Expand("/elsewhere", []string{root + "/a.js"}, nil)

	assert.Equal(t, domain.FileSet(abs("a.js")), got)
}

func TestExpander_NothingMatches(t *testing.T) {
	e := newExpander(t, "a.js")

	assert.Empty(t, e.Expand(root, nil, nil))
	assert.Empty(t, e.Expand(root, []string{"missing.js", "nope/*.js", "bad[", ""}, []string{"ghost"}))
}
