// Package config loads operator overrides for the cobrand defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/joeblew999/plat-assets/internal/asset"
)

// LoadOverrides reads a YAML layer config from path. Fields left out of
// the file stay zero so that asset.Merge inherits them.
func LoadOverrides(path string) (asset.LayerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return asset.LayerConfig{}, fmt.Errorf("reading overrides: %w", err)
	}
	return ParseOverrides(data)
}

// ParseOverrides decodes YAML override data.
func ParseOverrides(data []byte) (asset.LayerConfig, error) {
	var cfg asset.LayerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return asset.LayerConfig{}, fmt.Errorf("parsing overrides: %w", err)
	}
	return cfg, nil
}

// Defaults merges the overrides file at path over base. An empty path
// returns base unchanged.
func Defaults(base asset.LayerConfig, path string) (asset.LayerConfig, error) {
	if path == "" {
		return base, nil
	}
	override, err := LoadOverrides(path)
	if err != nil {
		return asset.LayerConfig{}, err
	}
	return asset.Merge(base, override), nil
}
