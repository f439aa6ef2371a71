package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aglyzov/go-orthtree/orthtree"
)

// Config holds the simulation settings.
type Config struct {
	Dimensions        int       `yaml:"dimensions"`
	Capacity          int       `yaml:"capacity"`
	ReinsertThreshold int       `yaml:"reinsert_threshold"`
	Region            Region    `yaml:"region"`
	Entities          int       `yaml:"entities"`
	StaticRatio       float64   `yaml:"static_ratio"`
	MaxSize           float32   `yaml:"max_size"`
	MaxSpeed          float32   `yaml:"max_speed"`
	Churn             float64   `yaml:"churn"`
	Ticks             int       `yaml:"ticks"`
	QueriesPerTick    int       `yaml:"queries_per_tick"`
	QuerySize         float32   `yaml:"query_size"`
	ResizeEvery       int       `yaml:"resize_every"`
	ReportEvery       int       `yaml:"report_every"`
	Seed              int64     `yaml:"seed"`
	Verify            bool      `yaml:"verify"`
	MetricsAddr       string    `yaml:"metrics_addr"`
	Log               LogConfig `yaml:"log"`
}

// Region is the simulated world box.
type Region struct {
	Min []float32 `yaml:"min"`
	Max []float32 `yaml:"max"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	// Level sets the minimum log level (debug, info, warn, error).
	Level string `yaml:"level"`
	// Format is either "json" or "console".
	Format string `yaml:"format"`
	// OutputFile is a file path, "stdout" or "stderr".
	OutputFile string `yaml:"output_file"`
}

// DefaultConfig returns a small two-dimensional simulation.
func DefaultConfig() Config {
	return Config{
		Dimensions:        2,
		Capacity:          orthtree.DefaultCapacity,
		ReinsertThreshold: orthtree.DefaultReinsertThreshold,
		Entities:          10_000,
		StaticRatio:       0.1,
		MaxSize:           5,
		MaxSpeed:          2,
		Churn:             0.001,
		Ticks:             100,
		QueriesPerTick:    100,
		QuerySize:         50,
		ReportEvery:       10,
		Seed:              1234567890,
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			OutputFile: "stderr",
		},
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// applyDefaults fills in a region of 1000 units per dimension when none is set.
func (c *Config) applyDefaults() {
	if len(c.Region.Min) == 0 && len(c.Region.Max) == 0 && c.Dimensions > 0 {
		c.Region.Min = make([]float32, c.Dimensions)
		c.Region.Max = make([]float32, c.Dimensions)
		for i := range c.Region.Max {
			c.Region.Max[i] = 1000
		}
	}
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	var errs []error

	if c.Dimensions < 1 || c.Dimensions > orthtree.MaxDims {
		errs = append(errs, fmt.Errorf("dimensions must be within 1..%d, got %d", orthtree.MaxDims, c.Dimensions))
	}
	if len(c.Region.Min) != c.Dimensions || len(c.Region.Max) != c.Dimensions {
		errs = append(errs, fmt.Errorf("region corners must have %d coordinates", c.Dimensions))
	} else {
		for i := range c.Region.Min {
			if !(c.Region.Max[i] > c.Region.Min[i]) {
				errs = append(errs, fmt.Errorf("region is empty along dimension %d", i))
			}
		}
	}
	if c.Capacity < 1 {
		errs = append(errs, fmt.Errorf("capacity must be positive, got %d", c.Capacity))
	}
	if c.Entities < 0 || c.Ticks < 0 || c.QueriesPerTick < 0 || c.ResizeEvery < 0 || c.ReportEvery < 0 {
		errs = append(errs, errors.New("counts must not be negative"))
	}
	if c.StaticRatio < 0 || c.StaticRatio > 1 {
		errs = append(errs, fmt.Errorf("static_ratio must be within 0..1, got %g", c.StaticRatio))
	}
	if c.Churn < 0 || c.Churn > 1 {
		errs = append(errs, fmt.Errorf("churn must be within 0..1, got %g", c.Churn))
	}
	if c.MaxSize < 0 || c.MaxSpeed < 0 || c.QuerySize < 0 {
		errs = append(errs, errors.New("sizes and speeds must not be negative"))
	}

	return errors.Join(errs...)
}
