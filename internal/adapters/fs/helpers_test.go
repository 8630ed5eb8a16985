package fs_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const root = "/project"

var baseTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

// newFs creates an in-memory file system holding the given files below root.
// Each file gets a distinct modification time in list order.
func newFs(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for i, name := range files {
		path := filepath.Join(root, name)
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fsys, path, []byte("// "+name+"\n"), 0o644))
		mtime := baseTime.Add(time.Duration(i) * time.Second)
		require.NoError(t, fsys.Chtimes(path, mtime, mtime))
	}
	return fsys
}

func abs(names ...string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = filepath.Join(root, name)
	}
	return out
}
