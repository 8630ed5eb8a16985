package fs

import (
	"bufio"
	"errors"
	"io"
	iofs "io/fs"
	"strings"

	"github.com/spf13/afero"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StalenessOracle = (*Oracle)(nil)

// Oracle decides freshness from the marker on an artifact's first line.
type Oracle struct {
	fs afero.Fs
}

// NewOracle creates a new Oracle.
func NewOracle(fsys afero.Fs) *Oracle {
	return &Oracle{fs: fsys}
}

// IsFresh reports whether the first line of the artifact at path contains fp.
// A missing or empty artifact is stale. Read errors are returned together with false.
func (o *Oracle) IsFresh(path string, fp domain.Fingerprint) (bool, error) {
	if fp == "" {
		return false, nil
	}

	f, err := o.fs.Open(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to open artifact"), "path", path)
	}
	defer f.Close() //nolint:errcheck // read-only

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, zerr.With(zerr.Wrap(err, "failed to read artifact"), "path", path)
	}
	if line == "" {
		return false, nil
	}

	return strings.Contains(line, string(fp)), nil
}
