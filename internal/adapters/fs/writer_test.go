package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stitch/internal/adapters/fs"
)

func TestWriter_Write(t *testing.T) {
	fsys := afero.NewMemMapFs()
	w := fs.NewWriter(fsys)
	path := filepath.Join(root, "dist", "all.js")

	exists, err := w.Exists(path)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, w.Write(path, []byte("first")))
	require.NoError(t, w.Write(path, []byte("second")))

	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	exists, err = w.Exists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Equal(t, []string{"all.js"}, listDir(t, fsys, filepath.Dir(path)), "no temporary files are left behind")
}

func TestWriter_WriteFailure(t *testing.T) {
	w := fs.NewWriter(afero.NewReadOnlyFs(afero.NewMemMapFs()))

	err := w.Write(filepath.Join(root, "all.js"), []byte("x"))

	require.Error(t, err)
}
