package domain

import (
	"fmt"
	"strings"
)

// Canonical setting keys.
const (
	KeyDependencies  = "dependencies"
	KeyPaths         = "paths"
	KeyOutput        = "output"
	KeyFingerprint   = "fingerprint"
	KeyCleanup       = "cleanup"
	KeyMinify        = "minify"
	KeyUglify        = "uglify"
	KeyMinifyOptions = "minify_options"
	KeyUglifyOptions = "uglify_options"
	KeyMinifier      = "minifier"
	KeyTranspilers   = "transpilers"
	KeyConfig        = "config"
)

// DefaultOutput is the artifact path used when none is configured.
const DefaultOutput = "all.js"

// Settings is the flat key/value form of a configuration.
// Values may be nested maps, which are merged recursively.
type Settings map[string]any

// DefaultSettings returns the programmatic defaults every configuration starts from.
// Minification has no default entry so that either of its spellings can enable it.
func DefaultSettings() Settings {
	return Settings{
		KeyDependencies: []any{},
		KeyPaths:        []any{},
		KeyOutput:       DefaultOutput,
		KeyFingerprint:  false,
		KeyCleanup:      true,
	}
}

// NormalizeKey returns the canonical form of a setting key.
// Symbol-style keys (":output") lose their colon and keys are lower-cased.
func NormalizeKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.TrimPrefix(key, ":")
	return strings.ToLower(strings.TrimSpace(key))
}

// NormalizeSettings converts a decoded document into Settings.
// Top-level keys are normalized; nested maps keep their keys but are converted
// to map[string]any.
func NormalizeSettings(raw map[string]any) Settings {
	out := make(Settings, len(raw))
	for k, v := range raw {
		out[NormalizeKey(k)] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = normalizeValue(inner)
		}
		return out
	case Settings:
		return normalizeValue(map[string]any(val))
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[fmt.Sprint(k)] = normalizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = normalizeValue(inner)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	default:
		return v
	}
}

// MergeSettings returns a new Settings with src layered over dst.
// Nested maps merge key by key; every other value in src replaces the one in dst.
func MergeSettings(dst, src Settings) Settings {
	out := dst.Clone()
	if out == nil {
		out = Settings{}
	}
	for k, v := range src {
		v = normalizeValue(v)
		srcMap, srcIsMap := v.(map[string]any)
		dstMap, dstIsMap := out[k].(map[string]any)
		if srcIsMap && dstIsMap {
			out[k] = map[string]any(MergeSettings(Settings(dstMap), Settings(srcMap)))
			continue
		}
		out[k] = cloneValue(v)
	}
	return out
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	if s == nil {
		return nil
	}
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := normalizeValue(v).(type) {
	case map[string]any:
		return map[string]any(Settings(val).Clone())
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = cloneValue(inner)
		}
		return out
	default:
		return val
	}
}
