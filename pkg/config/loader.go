package config

import (
	"fmt"
	"os"
)

// LoadConfig loads and parses a service configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := ParseConfigYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadPool loads and parses a player pool file.
func LoadPool(path string) (*Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pool file %s: %w", path, err)
	}
	pool, err := ParsePoolYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool file %s: %w", path, err)
	}
	return pool, nil
}
