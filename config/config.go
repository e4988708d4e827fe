// Package config provides the chipletcost command configuration file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/chiplet"
)

// ErrInvalid indicates a configuration value outside its allowed set.
var ErrInvalid = fmt.Errorf("config: invalid value: %w", chiplet.ErrConfiguration)

// Config is the complete chipletcost configuration.
type Config struct {
	Log     LogConfig `yaml:"log"`
	Library string    `yaml:"library"`
	// Parallelism bounds concurrent sibling builds inside one evaluation.
	Parallelism int         `yaml:"parallelism"`
	Sweep       SweepConfig `yaml:"sweep"`
	Watch       WatchConfig `yaml:"watch"`
}

// LogConfig configures the stderr logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// SweepConfig configures the sensitivity sweep.
type SweepConfig struct {
	// Percent is the perturbation size, 0 < Percent < 100.
	Percent float64 `yaml:"percent"`
	// Workers bounds concurrent trials.
	Workers int `yaml:"workers"`
	// Format is text or yaml.
	Format string `yaml:"format"`
	// MetricsTextfile, when set, receives the sweep metrics in the
	// Prometheus text format after the run.
	MetricsTextfile string `yaml:"metrics_textfile"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	// Debounce collapses bursts of file events into one evaluation.
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Log:         LogConfig{Level: "info"},
		Parallelism: 1,
		Sweep: SweepConfig{
			Percent: 1,
			Workers: runtime.GOMAXPROCS(0),
			Format:  "text",
		},
		Watch: WatchConfig{Debounce: 250 * time.Millisecond},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("%w: parallelism must be at least 1, got %d", ErrInvalid, c.Parallelism)
	}
	if !(c.Sweep.Percent > 0 && c.Sweep.Percent < 100) {
		return fmt.Errorf("%w: sweep.percent must be in (0, 100), got %g", ErrInvalid, c.Sweep.Percent)
	}
	if c.Sweep.Workers < 1 {
		return fmt.Errorf("%w: sweep.workers must be at least 1, got %d", ErrInvalid, c.Sweep.Workers)
	}
	if c.Sweep.Format != "text" && c.Sweep.Format != "yaml" {
		return fmt.Errorf("%w: sweep.format must be text or yaml, got %q", ErrInvalid, c.Sweep.Format)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("%w: watch.debounce must not be negative", ErrInvalid)
	}
	return nil
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: log.level %q", ErrInvalid, s)
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}
