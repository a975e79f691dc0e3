// Package config provides configuration loading for the navigation service.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tile-navigation/obstacle"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all service configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Navigation NavigationConfig `yaml:"navigation"`
	Obstacles  ObstaclesConfig  `yaml:"obstacles"`
	Tiles      []TileConfig     `yaml:"tiles"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// NavigationConfig holds bake parameters shared by every tile.
type NavigationConfig struct {
	TileWidth    int      `yaml:"tile_width"`    // Lattice points per tile side
	AgentRadius  float64  `yaml:"agent_radius"`  // Clearance of the swept disc
	IgnoreLayers []string `yaml:"ignore_layers"` // Layers that never block
}

// ObstaclesConfig describes where static geometry comes from.
type ObstaclesConfig struct {
	Dir             string        `yaml:"dir"`              // Directory of *.geojson files (empty = none)
	DefaultLayer    string        `yaml:"default_layer"`    // Layer for features without one
	SimplifyEpsilon float64       `yaml:"simplify_epsilon"` // Douglas-Peucker tolerance (0 = off)
	Scatter         ScatterConfig `yaml:"scatter"`
}

// ScatterConfig generates a procedural rock field over every tile.
type ScatterConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Seed      int64   `yaml:"seed"`
	Cell      float64 `yaml:"cell"`
	Threshold float64 `yaml:"threshold"`
}

// TileConfig anchors one tile in the world.
type TileConfig struct {
	Name string  `yaml:"name"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that cannot be baked.
func (c *Config) Validate() error {
	var errs []error
	if c.Navigation.TileWidth <= 0 {
		errs = append(errs, fmt.Errorf("navigation.tile_width must be positive, got %d", c.Navigation.TileWidth))
	}
	if c.Navigation.AgentRadius < 0 {
		errs = append(errs, fmt.Errorf("navigation.agent_radius must not be negative, got %g", c.Navigation.AgentRadius))
	}
	if c.Obstacles.Scatter.Enabled && c.Obstacles.Scatter.Cell <= 0 {
		errs = append(errs, fmt.Errorf("obstacles.scatter.cell must be positive, got %g", c.Obstacles.Scatter.Cell))
	}
	seen := make(map[string]bool, len(c.Tiles))
	for i, t := range c.Tiles {
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("tiles[%d]: name is required", i))
			continue
		}
		if seen[t.Name] {
			errs = append(errs, fmt.Errorf("tiles[%d]: duplicate name %q", i, t.Name))
		}
		seen[t.Name] = true
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Filter builds the obstacle filter from the ignored layers.
func (c NavigationConfig) Filter() obstacle.Filter {
	layers := make([]obstacle.Layer, len(c.IgnoreLayers))
	for i, l := range c.IgnoreLayers {
		layers[i] = obstacle.Layer(l)
	}
	return obstacle.NewFilter(layers...)
}
