package domain

import (
	"path/filepath"
	"strings"
)

// ArtifactName is an output path split into its directory, stem and extension.
// The extension starts at the first dot of the basename that is not a leading dot,
// so "all.min.js" has stem "all" and extension ".min.js".
type ArtifactName struct {
	Dir  string
	Stem string
	Ext  string
}

// ParseArtifactName splits output into an ArtifactName.
func ParseArtifactName(output string) ArtifactName {
	dir, base := filepath.Split(output)
	dir = filepath.Clean(dir)
	if dir == "" {
		dir = "."
	}

	lead := len(base) - len(strings.TrimLeft(base, "."))
	stem, ext := base, ""
	if i := strings.Index(base[lead:], "."); i >= 0 {
		stem, ext = base[:lead+i], base[lead+i:]
	}
	return ArtifactName{Dir: dir, Stem: stem, Ext: ext}
}

// Base returns the basename for fingerprint fp, or the plain name when fp is empty.
func (a ArtifactName) Base(fp Fingerprint) string {
	if fp == "" {
		return a.Stem + a.Ext
	}
	return a.Stem + "-" + string(fp) + a.Ext
}

// Resolve returns the full path of the artifact for fingerprint fp.
func (a ArtifactName) Resolve(fp Fingerprint) string {
	return filepath.Join(a.Dir, a.Base(fp))
}

// Matches reports whether base follows the naming convention of a: the stem,
// optionally followed by a dash and a non-empty fingerprint, then the extension.
// Comparison is case-insensitive.
func (a ArtifactName) Matches(base string) bool {
	name := strings.ToLower(base)
	stem := strings.ToLower(a.Stem)
	ext := strings.ToLower(a.Ext)

	if len(name) < len(stem)+len(ext) {
		return false
	}
	if !strings.HasPrefix(name, stem) || !strings.HasSuffix(name, ext) {
		return false
	}

	middle := name[len(stem) : len(name)-len(ext)]
	if middle == "" {
		return true
	}
	return len(middle) > 1 && middle[0] == '-'
}

// ResolveOutput returns the path the artifact should be written to.
// With fingerprinting disabled the configured output is returned unchanged.
func ResolveOutput(output string, fp Fingerprint, enabled bool) string {
	if !enabled {
		return output
	}
	return ParseArtifactName(output).Resolve(fp)
}
