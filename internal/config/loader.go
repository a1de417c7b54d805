package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/varsity/internal/domain/ensemble"
)

// Environment variable names.
const (
	EnvPrefix = "VARSITY_"
	EnvConfig = "VARSITY_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if VARSITY_CONFIG is set
//  3. env (prefix VARSITY_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv(EnvConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// VARSITY_QUEUE_SIZE -> queue_size. Keys stay flat so underscores
	// match the koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields the service cannot run without.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	for season := range c.SeasonReferences {
		if _, err := strconv.Atoi(season); err != nil {
			return fmt.Errorf("%w: season_references key %q is not a season", ErrInvalidConfig, season)
		}
	}
	if _, err := ensemble.NewSet(c.DefaultArchetype, c.ArchetypeList()...); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ArchetypeList converts configured archetypes to ensemble records.
func (c *Config) ArchetypeList() []ensemble.Archetype {
	out := make([]ensemble.Archetype, 0, len(c.Archetypes))
	for name, a := range c.Archetypes {
		out = append(out, ensemble.Archetype{
			Name:       name,
			Production: a.Production,
			Predictive: a.Predictive,
			Scarcity:   a.Scarcity,
			Market:     a.Market,
		})
	}
	return out
}
