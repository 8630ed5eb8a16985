package fs

import (
	"errors"
	iofs "io/fs"
	"path/filepath"
	"slices"
	"sync"

	"github.com/spf13/afero"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactJanitor = (*Janitor)(nil)

// Janitor removes artifacts superseded by a newer build.
type Janitor struct {
	fs afero.Fs

	mu      sync.Mutex
	deleted []string
}

// NewJanitor creates a new Janitor.
func NewJanitor(fsys afero.Fs) *Janitor {
	return &Janitor{fs: fsys}
}

// Sweep deletes the regular files in output's directory whose names follow
// output's naming convention, except the file named like keep.
// Subdirectories are not searched. Every deletion is attempted independently.
func (j *Janitor) Sweep(output, keep string) domain.CleanupResult {
	var result domain.CleanupResult
	name := domain.ParseArtifactName(output)

	entries, err := afero.ReadDir(j.fs, name.Dir)
	if err != nil {
		if !errors.Is(err, iofs.ErrNotExist) {
			result.Errors = append(result.Errors,
				zerr.With(zerr.Wrap(err, "failed to list artifact directory"), "path", name.Dir))
		}
		return result
	}

	keepBase := ""
	if keep != "" {
		keepBase = filepath.Base(keep)
	}

	for _, entry := range entries {
		base := entry.Name()
		if !entry.Mode().IsRegular() || base == keepBase || !name.Matches(base) {
			continue
		}

		path := filepath.Join(name.Dir, base)
		if err := j.fs.Remove(path); err != nil {
			result.Errors = append(result.Errors,
				zerr.With(zerr.Wrap(err, "failed to delete artifact"), "path", path))
			continue
		}
		result.Deleted = append(result.Deleted, path)
	}

	j.mu.Lock()
	j.deleted = append(j.deleted, result.Deleted...)
	j.mu.Unlock()

	return result
}

// Deleted returns every path removed by this janitor so far.
func (j *Janitor) Deleted() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return slices.Clone(j.deleted)
}
