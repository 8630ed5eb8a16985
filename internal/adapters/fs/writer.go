package fs

import (
	"path/filepath"

	"github.com/spf13/afero"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactWriter = (*Writer)(nil)

// Writer stores artifacts atomically by renaming a completed temporary file.
type Writer struct {
	fs afero.Fs
}

// NewWriter creates a new Writer.
func NewWriter(fsys afero.Fs) *Writer {
	return &Writer{fs: fsys}
}

// Write creates path's directory if needed and replaces path with data.
func (w *Writer) Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := w.fs.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // artifacts are world-readable
		return zerr.With(zerr.Wrap(err, "failed to create artifact directory"), "path", dir)
	}

	tmp, err := afero.TempFile(w.fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create temporary file"), "path", path)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = w.fs.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, "failed to write temporary file"), "path", tmpName)
	}
	if err := tmp.Close(); err != nil {
		_ = w.fs.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, "failed to close temporary file"), "path", tmpName)
	}

	if err := w.fs.Rename(tmpName, path); err != nil {
		_ = w.fs.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, "failed to move artifact into place"), "path", path)
	}

	return nil
}

// Exists reports whether a file is present at path.
func (w *Writer) Exists(path string) (bool, error) {
	ok, err := afero.Exists(w.fs, path)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to stat artifact"), "path", path)
	}
	return ok, nil
}
