package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseConfigYAML parses and validates a service configuration document.
func ParseConfigYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	applyConfigDefaults(cfg)
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParsePoolYAML parses and validates a player pool document.
func ParsePoolYAML(data []byte) (*Pool, error) {
	pool := &Pool{}
	if err := yaml.Unmarshal(data, pool); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validatePool(pool); err != nil {
		return nil, err
	}
	return pool, nil
}

func applyConfigDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.Simulation == nil {
		cfg.Simulation = &SimulationDefaults{}
	}
	if cfg.Simulation.Runs <= 0 {
		cfg.Simulation.Runs = 500
	}
	if cfg.Simulation.SetsToWin <= 0 {
		cfg.Simulation.SetsToWin = 2
	}
	if cfg.Optimizer == nil {
		cfg.Optimizer = &OptimizerDefaults{}
	}
	if cfg.Optimizer.Budget <= 0 {
		cfg.Optimizer.Budget = 100000
	}
	if cfg.Optimizer.TeamSize <= 0 {
		cfg.Optimizer.TeamSize = 8
	}
	if cfg.Optimizer.Strategy == "" {
		cfg.Optimizer.Strategy = "annealing"
	}
}

func validateConfig(cfg *Config) error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	validStrategies := map[string]bool{
		"random":    true,
		"hillclimb": true,
		"annealing": true,
	}
	if !validStrategies[cfg.Optimizer.Strategy] {
		return fmt.Errorf("invalid optimizer strategy: %s (must be random, hillclimb, or annealing)", cfg.Optimizer.Strategy)
	}
	if cfg.Optimizer.CoolingRate < 0 || cfg.Optimizer.CoolingRate >= 1 {
		return fmt.Errorf("optimizer cooling_rate must be in [0,1), got %v", cfg.Optimizer.CoolingRate)
	}
	return nil
}

func validatePool(pool *Pool) error {
	if len(pool.Players) == 0 {
		return fmt.Errorf("pool must define at least one player")
	}

	names := make(map[string]bool, len(pool.Players))
	for _, p := range pool.Players {
		if p.Name == "" {
			return fmt.Errorf("player name cannot be empty")
		}
		if names[p.Name] {
			return fmt.Errorf("duplicate player name: %s", p.Name)
		}
		names[p.Name] = true

		if p.Cost < 0 {
			return fmt.Errorf("player %s: cost cannot be negative", p.Name)
		}
		if p.Seed < 0 {
			return fmt.Errorf("player %s: seed cannot be negative", p.Name)
		}
		if p.Score < 0 {
			return fmt.Errorf("player %s: score cannot be negative", p.Name)
		}

		if !p.Detailed() && p.ServeWinPct == 0 {
			return fmt.Errorf("player %s: needs either detailed serve stats or serve_win_pct", p.Name)
		}
		// Range checks are delegated to the profile itself so pool
		// records and ad-hoc API players fail identically.
		if err := p.Profile().Validate(); err != nil {
			return err
		}
	}
	return nil
}
