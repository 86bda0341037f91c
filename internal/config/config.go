// Package config parses the command line and the optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/utkarsh5026/budgetwc/internal/display"
)

const (
	DefaultWorkers       = 4
	DefaultQueueCapacity = 100
	DefaultBurst         = 1
)

// Config holds everything the program needs for one run.
type Config struct {
	Fields display.Fields
	Files  []string

	Workers       int
	QueueCapacity int
	RateLimit     float64
	Burst         int
	LockThreads   bool

	Table    bool
	Progress bool
	Color    string
	Verbose  bool

	ShowHelp bool
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Workers:       DefaultWorkers,
		QueueCapacity: DefaultQueueCapacity,
		Burst:         DefaultBurst,
		Color:         "auto",
	}
}

// Validate checks the numeric settings and the color mode.
func (c Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.QueueCapacity <= 0 {
		return fmt.Errorf("queue capacity must be positive, got %d", c.QueueCapacity)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative, got %g", c.RateLimit)
	}
	if c.Burst <= 0 {
		return fmt.Errorf("burst must be positive, got %d", c.Burst)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", c.Color)
	}
	return nil
}

// FileConfig is the YAML layout accepted by --config.
type FileConfig struct {
	Pool   PoolSection   `yaml:"pool"`
	Output OutputSection `yaml:"output"`
}

// PoolSection configures the worker pool. Zero values keep the defaults.
type PoolSection struct {
	Workers       int     `yaml:"workers"`
	QueueCapacity int     `yaml:"queue_capacity"`
	RateLimit     float64 `yaml:"rate_limit"`
	Burst         int     `yaml:"burst"`
	LockThreads   bool    `yaml:"lock_threads"`
}

// OutputSection configures presentation.
type OutputSection struct {
	Table    bool   `yaml:"table"`
	Progress bool   `yaml:"progress"`
	Color    string `yaml:"color"`
}

// LoadFile reads and decodes a YAML config file. Unknown keys are errors.
func LoadFile(path string) (*FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var fc FileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return &fc, nil
		}
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &fc, nil
}

// Apply copies the non-zero settings of fc onto c.
func (fc *FileConfig) Apply(c *Config) {
	if fc.Pool.Workers != 0 {
		c.Workers = fc.Pool.Workers
	}
	if fc.Pool.QueueCapacity != 0 {
		c.QueueCapacity = fc.Pool.QueueCapacity
	}
	if fc.Pool.RateLimit != 0 {
		c.RateLimit = fc.Pool.RateLimit
	}
	if fc.Pool.Burst != 0 {
		c.Burst = fc.Pool.Burst
	}
	c.LockThreads = c.LockThreads || fc.Pool.LockThreads

	c.Table = c.Table || fc.Output.Table
	c.Progress = c.Progress || fc.Output.Progress
	if fc.Output.Color != "" {
		c.Color = fc.Output.Color
	}
}
