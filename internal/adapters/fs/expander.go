package fs

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
)

var _ ports.PathExpander = (*Expander)(nil)

// Expander turns configured dependencies and path-roots into a FileSet.
type Expander struct {
	fs     afero.Fs
	walker *Walker
}

// NewExpander creates a new Expander.
func NewExpander(fsys afero.Fs, walker *Walker) *Expander {
	return &Expander{fs: fsys, walker: walker}
}

// Expand resolves dependencies first, then path-roots, relative to root.
// Directories expand to their descendants, other entries are globbed, and the
// result keeps the first occurrence of every file.
func (e *Expander) Expand(root string, dependencies, paths []string) domain.FileSet {
	seen := make(map[string]bool)
	files := domain.FileSet{}

	for _, entries := range [][]string{dependencies, paths} {
		for _, entry := range entries {
			for _, path := range e.expandEntry(root, entry) {
				if seen[path] {
					continue
				}
				seen[path] = true
				files = append(files, path)
			}
		}
	}

	return files
}

func (e *Expander) expandEntry(root, entry string) []string {
	if strings.TrimSpace(entry) == "" {
		return nil
	}

	path := entry
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	info, err := e.fs.Stat(path)
	if err == nil {
		switch {
		case info.IsDir():
			var files []string
			for file := range e.walker.WalkFiles(path) {
				files = append(files, file)
			}
			return files
		case info.Mode().IsRegular():
			return []string{filepath.Clean(path)}
		default:
			return nil
		}
	}

	if !hasMeta(entry) {
		return nil
	}
	return e.walker.Glob(path)
}
