package fs

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const globMeta = "*?["

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, globMeta)
}

// Glob returns the regular files matching pattern.
// Segments support "*", "?" and "[...]"; a "**" segment matches zero or more
// directories. Wildcards do not match hidden names unless the pattern segment
// itself starts with a dot. Malformed patterns match nothing.
func (w *Walker) Glob(pattern string) []string {
	pattern = filepath.Clean(pattern)
	if !strings.Contains(pattern, "**") {
		return w.simpleGlob(pattern)
	}

	parts := strings.Split(filepath.ToSlash(pattern), "/")
	i := 0
	for i < len(parts) && !hasMeta(parts[i]) {
		i++
	}

	base := filepath.FromSlash(strings.Join(parts[:i], "/"))
	switch {
	case base == "" && strings.HasPrefix(pattern, string(filepath.Separator)):
		base = string(filepath.Separator)
	case base == "":
		base = "."
	}

	var matches []string
	for path := range w.WalkFiles(base) {
		rel, err := filepath.Rel(base, path)
		if err != nil {
			continue
		}
		if matchGlobParts(strings.Split(filepath.ToSlash(rel), "/"), parts[i:], 0, 0) {
			matches = append(matches, path)
		}
	}
	return matches
}

func (w *Walker) simpleGlob(pattern string) []string {
	candidates, err := afero.Glob(w.fs, pattern)
	if err != nil {
		return nil
	}

	patternParts := strings.Split(filepath.ToSlash(pattern), "/")
	var matches []string
	for _, match := range candidates {
		if hiddenByWildcard(strings.Split(filepath.ToSlash(match), "/"), patternParts) {
			continue
		}
		info, err := w.fs.Stat(match)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		matches = append(matches, match)
	}
	return matches
}

// hiddenByWildcard reports whether a hidden segment of the match was produced
// by a pattern segment that does not name a hidden entry explicitly.
func hiddenByWildcard(matchParts, patternParts []string) bool {
	if len(matchParts) != len(patternParts) {
		return false
	}
	for i, part := range matchParts {
		if isHidden(part) && !strings.HasPrefix(patternParts[i], ".") {
			return true
		}
	}
	return false
}

// matchGlobParts matches path segments against pattern segments, where a "**"
// segment consumes zero or more path segments.
func matchGlobParts(pathParts, patternParts []string, pathIdx, patternIdx int) bool {
	if patternIdx >= len(patternParts) {
		return pathIdx >= len(pathParts)
	}

	if pathIdx >= len(pathParts) {
		for i := patternIdx; i < len(patternParts); i++ {
			if patternParts[i] != "**" {
				return false
			}
		}
		return true
	}

	patternPart := patternParts[patternIdx]
	pathPart := pathParts[pathIdx]

	if patternPart == "**" {
		if matchGlobParts(pathParts, patternParts, pathIdx, patternIdx+1) {
			return true
		}
		return matchGlobParts(pathParts, patternParts, pathIdx+1, patternIdx)
	}

	matched, err := filepath.Match(patternPart, pathPart)
	if err != nil || !matched {
		return false
	}

	return matchGlobParts(pathParts, patternParts, pathIdx+1, patternIdx+1)
}
