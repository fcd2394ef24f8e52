package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a world configuration from a YAML file.
func Load(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read world config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a world configuration from YAML bytes.
func Parse(data []byte) (*World, error) {
	var world World
	if err := yaml.Unmarshal(data, &world); err != nil {
		return nil, fmt.Errorf("parse world config: %w", err)
	}
	return &world, nil
}
