// Package config loads engine tuning presets from YAML files and bridges
// them into engine builder options.
package config

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/jelly-go/engine"
	"github.com/Carmen-Shannon/jelly-go/engine/surface"
	"github.com/Carmen-Shannon/jelly-go/engine/wave"
	"gopkg.in/yaml.v3"
)

// GridConfig sets the mesh resolution for every surface.
type GridConfig struct {
	Cols int32 `yaml:"cols"`
	Rows int32 `yaml:"rows"`
}

// WaveConfig sets the deformation wave shape.
type WaveConfig struct {
	Amplitude float32 `yaml:"amplitude"`
	Frequency float32 `yaml:"frequency"`
	Damping   float32 `yaml:"damping"`
}

// Config is the full engine tuning preset. Fields omitted from the YAML file
// keep their defaults (see Default).
type Config struct {
	Grid GridConfig `yaml:"grid"`
	Wave WaveConfig `yaml:"wave"`

	// MaxBoost caps the velocity boost factor. 0 = unclamped.
	MaxBoost float32 `yaml:"max_boost"`

	// SettleFPS enables spring smoothing of the uniform velocity at the given
	// host frame rate. 0 = off.
	SettleFPS float64 `yaml:"settle_fps"`
}

// Default returns the stock configuration: a 20x12 grid, the stock wave
// shape, no boost cap, and no settle smoothing.
//
// Returns:
//   - *Config: the default configuration
func Default() *Config {
	p := wave.DefaultParams()
	return &Config{
		Grid: GridConfig{
			Cols: surface.DefaultGridCols,
			Rows: surface.DefaultGridRows,
		},
		Wave: WaveConfig{
			Amplitude: p.Amplitude,
			Frequency: p.Frequency,
			Damping:   p.Damping,
		},
	}
}

// Load reads a configuration preset from a YAML file. Fields omitted from the
// file keep their defaults; the result is validated before being returned.
//
// Parameters:
//   - path: path to the YAML file
//
// Returns:
//   - *Config: the loaded configuration
//   - error: read, parse, or validation failure
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine cannot use.
//
// Returns:
//   - error: the first invalid field found, or nil
func (c *Config) Validate() error {
	if c.Grid.Cols < 1 || c.Grid.Rows < 1 {
		return fmt.Errorf("grid dimensions must be positive, got %dx%d", c.Grid.Cols, c.Grid.Rows)
	}
	if c.Wave.Damping < 0 {
		return fmt.Errorf("wave damping must be non-negative, got %v", c.Wave.Damping)
	}
	return nil
}

// EngineOptions bridges the configuration into engine builder options.
//
// Returns:
//   - []engine.EngineBuilderOption: options expressing this configuration
func (c *Config) EngineOptions() []engine.EngineBuilderOption {
	return []engine.EngineBuilderOption{
		engine.WithGridSize(c.Grid.Cols, c.Grid.Rows),
		engine.WithWaveParams(wave.Params{
			Amplitude: c.Wave.Amplitude,
			Frequency: c.Wave.Frequency,
			Damping:   c.Wave.Damping,
		}),
		engine.WithMaxBoost(c.MaxBoost),
		engine.WithSettle(c.SettleFPS),
	}
}
