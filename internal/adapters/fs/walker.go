// Package fs provides file system adapters for expanding, fingerprinting,
// checking, writing and cleaning build artifacts.
package fs

import (
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Walker provides file walking functionality.
type Walker struct {
	fs afero.Fs
}

// NewWalker creates a new Walker over fsys.
func NewWalker(fsys afero.Fs) *Walker {
	return &Walker{fs: fsys}
}

// WalkFiles yields every regular file below root in lexical order.
// Hidden files and directories below root are skipped, matching shell "**/*" globbing.
// Symlinks to regular files are yielded under their own path; symlinked
// directories are not descended into. Unreadable entries are skipped silently.
func (w *Walker) WalkFiles(root string) iter.Seq[string] {
	root = filepath.Clean(root)
	return func(yield func(string) bool) {
		_ = afero.Walk(w.fs, root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				if info != nil && info.IsDir() && path != root {
					return filepath.SkipDir
				}
				return nil
			}

			if path != root && isHidden(info.Name()) {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !w.isRegular(path, info) {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

// isRegular reports whether path is a regular file, following a symlink
// since afero.Walk reports links without resolving them.
func (w *Walker) isRegular(path string, info os.FileInfo) bool {
	if info.Mode()&os.ModeSymlink == 0 {
		return info.Mode().IsRegular()
	}
	target, err := w.fs.Stat(path)
	return err == nil && target.Mode().IsRegular()
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
