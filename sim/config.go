package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config groups the parameters of a run. Loadable from a YAML file.
type Config struct {
	EndTime         float64 `yaml:"end_time"`         // run horizon
	Timestep        float64 `yaml:"timestep"`         // fixed step (must be > 0)
	Friction        float64 `yaml:"friction"`         // velocity multiplier applied after each position update
	MaxVelocity     float64 `yaml:"max_velocity"`     // velocity magnitude cap
	MaxAcceleration float64 `yaml:"max_acceleration"` // acceleration magnitude cap
	Seed            int64   `yaml:"seed"`             // master seed for division angles
	Sigma           float64 `yaml:"sigma"`            // Lennard-Jones length scale
	Epsilon         float64 `yaml:"epsilon"`          // Lennard-Jones well depth
}

// DefaultConfig returns the stock run parameters.
func DefaultConfig() Config {
	return Config{
		EndTime:         10.0,
		Timestep:        0.005,
		Friction:        0.95,
		MaxVelocity:     3.0,
		MaxAcceleration: 1.5,
		Seed:            42,
		Sigma:           DefaultSigma,
		Epsilon:         DefaultEpsilon,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading run config: %w", err)
	}
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing run config: %w", err)
	}
	return cfg, nil
}

// Validate checks that every parameter is finite and in range.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"end_time", c.EndTime},
		{"timestep", c.Timestep},
		{"friction", c.Friction},
		{"max_velocity", c.MaxVelocity},
		{"max_acceleration", c.MaxAcceleration},
		{"sigma", c.Sigma},
		{"epsilon", c.Epsilon},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s must be finite, got %v", f.name, f.value)
		}
	}
	if c.Timestep <= 0 {
		return fmt.Errorf("timestep must be > 0, got %v", c.Timestep)
	}
	if c.Sigma <= 0 {
		return fmt.Errorf("sigma must be > 0, got %v", c.Sigma)
	}
	if c.Epsilon < 0 {
		return fmt.Errorf("epsilon must be non-negative, got %v", c.Epsilon)
	}
	if c.Friction < 0 {
		return fmt.Errorf("friction must be non-negative, got %v", c.Friction)
	}
	if c.MaxVelocity < 0 {
		return fmt.Errorf("max_velocity must be non-negative, got %v", c.MaxVelocity)
	}
	if c.MaxAcceleration < 0 {
		return fmt.Errorf("max_acceleration must be non-negative, got %v", c.MaxAcceleration)
	}
	return nil
}
