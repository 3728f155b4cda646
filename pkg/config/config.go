// Package config handles planner configuration via YAML files and
// environment variables.
//
// Configuration Precedence (highest to lowest):
//  1. Environment variables (NEBULA_*)
//  2. Config file (config.yaml)
//  3. Built-in defaults
//
// Environment Variables:
//   - NEBULA_MAX_TRAVERSAL_STEPS=100
//   - NEBULA_DEFAULT_MAX_HOPS=10
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither file nor environment sets a value.
const (
	DefaultMaxTraversalSteps = 100
	DefaultDefaultMaxHops    = 10
)

// Config holds planner limits.
//
// MaxTraversalSteps caps the hop range a pattern may declare; patterns
// beyond the cap are rejected at compile time, never truncated. The cap
// is what makes unbounded patterns a compile error rather than an
// unbounded unrolling loop.
//
// DefaultMaxHops is the range substituted for an open upper bound by
// front ends that choose to accept one (e.g. "*2..").
type Config struct {
	MaxTraversalSteps int `yaml:"max_traversal_steps"`
	DefaultMaxHops    int `yaml:"default_max_hops"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxTraversalSteps: DefaultMaxTraversalSteps,
		DefaultMaxHops:    DefaultDefaultMaxHops,
	}
}

// LoadFromEnv returns the defaults with NEBULA_* environment overrides
// applied.
func LoadFromEnv() (Config, error) {
	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFromFile reads a YAML config file, then applies environment
// overrides on top.
func LoadFromFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if err := envInt("NEBULA_MAX_TRAVERSAL_STEPS", &c.MaxTraversalSteps); err != nil {
		return err
	}
	return envInt("NEBULA_DEFAULT_MAX_HOPS", &c.DefaultMaxHops)
}

func envInt(name string, dst *int) error {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%s: %q is not an integer", name, raw)
	}
	*dst = value
	return nil
}

// Validate checks that the limits are internally consistent.
func (c Config) Validate() error {
	if c.MaxTraversalSteps < 1 {
		return fmt.Errorf("max_traversal_steps must be at least 1, got %d", c.MaxTraversalSteps)
	}
	if c.DefaultMaxHops < 1 {
		return fmt.Errorf("default_max_hops must be at least 1, got %d", c.DefaultMaxHops)
	}
	if c.DefaultMaxHops > c.MaxTraversalSteps {
		return fmt.Errorf("default_max_hops %d exceeds max_traversal_steps %d",
			c.DefaultMaxHops, c.MaxTraversalSteps)
	}
	return nil
}
