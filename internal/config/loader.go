package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SKILLTREE_CONFIG is set
//  3. env (prefix SKILLTREE_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SKILLTREE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: SKILLTREE_GRAPH_FILE, SKILLTREE_DEFAULT_EXP, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("SKILLTREE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "skilltree_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.GraphFile == "" {
		return fmt.Errorf("%w: graph_file must not be empty", ErrInvalidConfig)
	}
	if cfg.RefreshIntervalSec <= 0 {
		return fmt.Errorf("%w: refresh_interval_sec must be positive", ErrInvalidConfig)
	}
	if cfg.RustyAfterSec <= 0 || cfg.VeryRustyAfterSec <= cfg.RustyAfterSec {
		return fmt.Errorf("%w: very_rusty_after_sec must exceed rusty_after_sec, both positive", ErrInvalidConfig)
	}
	if cfg.RandomDelta < 0 {
		return fmt.Errorf("%w: random_delta must not be negative", ErrInvalidConfig)
	}
	if _, err := cfg.LevelTable(); err != nil {
		return fmt.Errorf("%w: levels: %v", ErrInvalidConfig, err)
	}
	return nil
}
