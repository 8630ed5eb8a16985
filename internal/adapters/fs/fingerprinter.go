package fs

import (
	"encoding/hex"
	"errors"
	"hash"
	iofs "io/fs"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Fingerprinter)(nil)

// Fingerprinter digests file modification times and configuration.
type Fingerprinter struct {
	fs      afero.Fs
	newHash func() hash.Hash
}

// FingerprinterOption configures a Fingerprinter.
type FingerprinterOption func(*Fingerprinter)

// WithHashFunc replaces the xxHash64 digest, e.g. with md5.New.
func WithHashFunc(fn func() hash.Hash) FingerprinterOption {
	return func(f *Fingerprinter) {
		f.newHash = fn
	}
}

// NewFingerprinter creates a new Fingerprinter.
func NewFingerprinter(fsys afero.Fs, opts ...FingerprinterOption) *Fingerprinter {
	f := &Fingerprinter{
		fs:      fsys,
		newHash: func() hash.Hash { return xxhash.New() },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Compute returns the digest of every file's modification time in seconds,
// in order and without separators, followed by the canonical configuration.
// Only file metadata is read.
func (f *Fingerprinter) Compute(files domain.FileSet, cfg domain.Config) (domain.Fingerprint, error) {
	h := f.newHash()

	for _, path := range files {
		info, err := f.fs.Stat(path)
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				return "", zerr.With(errors.Join(domain.ErrInputVanished, err), "path", path)
			}
			return "", zerr.With(errors.Join(domain.ErrFingerprintFailed, err), "path", path)
		}
		_, _ = h.Write([]byte(strconv.FormatInt(info.ModTime().Unix(), 10)))
	}
	_, _ = h.Write([]byte(cfg.Canonical()))

	return domain.Fingerprint(hex.EncodeToString(h.Sum(nil))), nil
}
