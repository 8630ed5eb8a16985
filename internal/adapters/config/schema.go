package config

import (
	"errors"

	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultNamespace is the top-level key that may wrap a configuration document.
const DefaultNamespace = "stitch"

var errNotMapping = errors.New("configuration document must be a mapping")

// decodeDocument parses a YAML (or JSON) document into settings.
// An empty document yields empty settings. A document whose only key is
// namespace with a mapping value is unwrapped.
func decodeDocument(data []byte, namespace string) (domain.Settings, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return domain.Settings{}, nil
	}

	doc := root.Content[0]
	if doc.Kind == yaml.ScalarNode && doc.Tag == "!!null" {
		return domain.Settings{}, nil
	}
	if doc.Kind != yaml.MappingNode {
		return nil, zerr.With(zerr.Wrap(errNotMapping, ""), "line", doc.Line)
	}

	var raw map[string]any
	if err := doc.Decode(&raw); err != nil {
		return nil, err
	}

	settings := domain.NormalizeSettings(raw)
	if len(settings) == 1 {
		if inner, ok := settings[namespace].(map[string]any); ok {
			return domain.NormalizeSettings(inner), nil
		}
	}

	return settings, nil
}
