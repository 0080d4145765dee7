package options

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadOverrides reads a YAML mapping of option keys. A missing file yields an
// empty mapping.
func LoadOverrides(path string) (map[string]any, error) {
	if path == "" {
		return map[string]any{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	overrides := map[string]any{}
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return overrides, nil
}

// Load resolves the overrides in path with extra applied on top of them.
func Load(path string, extra map[string]any) (Options, []string, error) {
	overrides, err := LoadOverrides(path)
	if err != nil {
		return Options{}, nil, err
	}
	for key, value := range extra {
		overrides[key] = value
	}
	opts, ignored := Resolve(overrides)
	return opts, ignored, nil
}
