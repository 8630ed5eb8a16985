package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Config is the resolved configuration of a single build invocation.
// It is immutable: With returns a new value instead of modifying the receiver.
type Config struct {
	Dependencies  []string
	Paths         []string
	Output        string
	Fingerprint   bool
	Cleanup       bool
	Minify        bool
	MinifyOptions map[string]any
	Minifier      []string
	Transpilers   map[string][]string
	Extra         map[string]any

	settings  Settings
	canonical string
}

var knownKeys = map[string]bool{
	KeyDependencies:  true,
	KeyPaths:         true,
	KeyOutput:        true,
	KeyFingerprint:   true,
	KeyCleanup:       true,
	KeyMinify:        true,
	KeyUglify:        true,
	KeyMinifyOptions: true,
	KeyUglifyOptions: true,
	KeyMinifier:      true,
	KeyTranspilers:   true,
}

// NewConfig decodes merged settings into a Config.
func NewConfig(settings Settings) (Config, error) {
	s := NormalizeSettings(settings)
	delete(s, KeyConfig)

	var (
		cfg Config
		err error
	)
	if cfg.Dependencies, err = stringList(s, KeyDependencies); err != nil {
		return Config{}, err
	}
	if cfg.Paths, err = stringList(s, KeyPaths); err != nil {
		return Config{}, err
	}
	if cfg.Output, err = stringValue(s, KeyOutput); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.Output) == "" {
		return Config{}, ErrMissingOutput
	}
	if cfg.Fingerprint, err = boolValue(s, KeyFingerprint, false); err != nil {
		return Config{}, err
	}
	if cfg.Cleanup, err = boolValue(s, KeyCleanup, true); err != nil {
		return Config{}, err
	}
	if cfg.Minify, err = boolValue(s, KeyUglify, false); err != nil {
		return Config{}, err
	}
	if cfg.Minify, err = boolValue(s, KeyMinify, cfg.Minify); err != nil {
		return Config{}, err
	}
	if cfg.MinifyOptions, err = mapValue(s, KeyUglifyOptions); err != nil {
		return Config{}, err
	}
	if opts, err := mapValue(s, KeyMinifyOptions); err != nil {
		return Config{}, err
	} else if opts != nil {
		cfg.MinifyOptions = opts
	}
	if cfg.Minifier, err = stringList(s, KeyMinifier); err != nil {
		return Config{}, err
	}
	if cfg.Transpilers, err = transpilerMap(s); err != nil {
		return Config{}, err
	}

	for k, v := range s {
		if knownKeys[k] {
			continue
		}
		if cfg.Extra == nil {
			cfg.Extra = make(map[string]any)
		}
		cfg.Extra[k] = cloneValue(v)
	}

	encoded, err := json.Marshal(map[string]any(s))
	if err != nil {
		return Config{}, errors.Join(ErrInvalidSetting, err)
	}
	cfg.settings = s
	cfg.canonical = string(encoded)
	return cfg, nil
}

// With returns the configuration produced by layering overrides over c.
// The receiver is left untouched, so a transient override never needs restoring.
// Config references cannot be followed here and are rejected; the loader resolves them.
func (c Config) With(overrides Settings) (Config, error) {
	if len(overrides) == 0 {
		return c, nil
	}
	normalized := NormalizeSettings(overrides)
	if _, ok := normalized[KeyConfig]; ok {
		err := zerr.Wrap(ErrInvalidSetting, "config references must be resolved by the loader")
		return Config{}, zerr.With(err, "key", KeyConfig)
	}
	return NewConfig(MergeSettings(c.settings, normalized))
}

// Canonical returns a stable textual serialization of every setting.
// Keys are sorted at every depth.
func (c Config) Canonical() string {
	return c.canonical
}

func stringList(s Settings, key string) ([]string, error) {
	v, ok := s[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch val := v.(type) {
	case string:
		if val == "" {
			return nil, nil
		}
		return []string{val}, nil
	case []any:
		var out []string
		for _, item := range val {
			nested, err := stringList(Settings{key: item}, key)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
		}
		return out, nil
	default:
		return nil, invalidSetting(key, v)
	}
}

func stringValue(s Settings, key string) (string, error) {
	v, ok := s[key]
	if !ok || v == nil {
		return "", nil
	}
	switch val := v.(type) {
	case string:
		return val, nil
	case int, int64, float64:
		return fmt.Sprint(val), nil
	default:
		return "", invalidSetting(key, v)
	}
}

func boolValue(s Settings, key string, fallback bool) (bool, error) {
	v, ok := s[key]
	if !ok || v == nil {
		return fallback, nil
	}
	switch val := v.(type) {
	case bool:
		return val, nil
	case int:
		return val != 0, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "yes", "on":
			return true, nil
		case "no", "off", "":
			return false, nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return false, invalidSetting(key, v)
		}
		return b, nil
	default:
		return false, invalidSetting(key, v)
	}
}

func mapValue(s Settings, key string) (map[string]any, error) {
	v, ok := s[key]
	if !ok || v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, invalidSetting(key, v)
	}
	return map[string]any(Settings(m).Clone()), nil
}

func transpilerMap(s Settings) (map[string][]string, error) {
	m, err := mapValue(s, KeyTranspilers)
	if err != nil || m == nil {
		return nil, err
	}
	out := make(map[string][]string, len(m))
	for _, ext := range slices.Sorted(maps.Keys(m)) {
		argv, err := stringList(Settings{KeyTranspilers: m[ext]}, KeyTranspilers)
		if err != nil {
			return nil, err
		}
		norm := strings.ToLower(ext)
		if !strings.HasPrefix(norm, ".") {
			norm = "." + norm
		}
		out[norm] = argv
	}
	return out, nil
}

func invalidSetting(key string, v any) error {
	err := zerr.With(zerr.Wrap(ErrInvalidSetting, ""), "key", key)
	return zerr.With(err, "value", fmt.Sprintf("%v", v))
}
