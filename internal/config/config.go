// Package config defines engine configuration structures and loading hooks.
//
// Conventions:
//   - Provide New() to build a Config with defaults; Load(ctx) layers
//     file and environment on top.
//   - External errors must be wrapped via this package's error helpers.
package config

import (
	"time"

	"github.com/okian/skilltree/internal/domain/level"
)

// LevelEntry mirrors level.Entry for configuration files.
type LevelEntry struct {
	Threshold int    `koanf:"threshold"`
	Name      string `koanf:"name"`
}

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// GraphFile is the path of the persisted skill graph.
	GraphFile string `koanf:"graph_file"`

	// MetricsAddr configures the /metrics listen address in serve mode.
	MetricsAddr string `koanf:"metrics_addr"`

	// RefreshIntervalSec sets the cadence of the display refresh tick.
	RefreshIntervalSec int `koanf:"refresh_interval_sec"`

	// RustyAfterSec and VeryRustyAfterSec are the decay thresholds.
	// VeryRustyAfterSec must exceed RustyAfterSec.
	RustyAfterSec     int `koanf:"rusty_after_sec"`
	VeryRustyAfterSec int `koanf:"very_rusty_after_sec"`

	// DefaultExp and RandomDelta drive randomized awards: each default
	// award is DefaultExp plus a uniform amount in [0, RandomDelta].
	DefaultExp  int `koanf:"default_exp"`
	RandomDelta int `koanf:"random_delta"`

	// Levels overrides the built-in level table when non-empty.
	Levels []LevelEntry `koanf:"levels"`

	// FocusSkills is the subset whose weakest member feeds the %f
	// display placeholder.
	FocusSkills []string `koanf:"focus_skills"`

	// DisplayFormat is the refresh template. Recognized placeholders:
	// %t total, %p level percent, %f focus percent, %l level, %n next
	// level, %% literal percent.
	DisplayFormat string `koanf:"display_format"`

	// ExcludedLevels hides skills at the named levels from exports.
	ExcludedLevels []string `koanf:"excluded_levels"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		GraphFile:          "skills.yaml",
		MetricsAddr:        ":9180",
		RefreshIntervalSec: 60,
		RustyAfterSec:      int((30 * 24 * time.Hour).Seconds()),
		VeryRustyAfterSec:  int((90 * 24 * time.Hour).Seconds()),
		DefaultExp:         10,
		RandomDelta:        5,
		DisplayFormat:      "%l %p%% (next: %n)",
	}
}

// LevelTable builds the level table: the configured entries when
// present, the built-in table otherwise.
func (c *Config) LevelTable() (*level.Table, error) {
	if len(c.Levels) == 0 {
		return level.Default(), nil
	}
	entries := make([]level.Entry, 0, len(c.Levels))
	for _, e := range c.Levels {
		entries = append(entries, level.Entry{Threshold: e.Threshold, Name: e.Name})
	}
	return level.New(entries)
}

// RustyAfter returns the rusty threshold as a duration.
func (c *Config) RustyAfter() time.Duration {
	return time.Duration(c.RustyAfterSec) * time.Second
}

// VeryRustyAfter returns the very-rusty threshold as a duration.
func (c *Config) VeryRustyAfter() time.Duration {
	return time.Duration(c.VeryRustyAfterSec) * time.Second
}

// RefreshInterval returns the refresh cadence as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSec) * time.Second
}
