// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"runtime"
)

// Archetype holds the four additive pillar weights of one archetype.
type Archetype struct {
	Production float64 `koanf:"production"`
	Predictive float64 `koanf:"predictive"`
	Scarcity   float64 `koanf:"scarcity"`
	Market     float64 `koanf:"market"`
}

// Breakpoint is one calibration point of a performance band.
type Breakpoint struct {
	Raw    float64 `koanf:"raw"`
	Points float64 `koanf:"points"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory valuation job queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of valuation workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the request-id cache.
	DedupeSize int `koanf:"dedupe_size"`

	// ShardCount configures the number of shards in the valuation store.
	ShardCount int `koanf:"shard_count"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// MaxBatchSize caps the number of athletes in one POST /valuations/batch.
	MaxBatchSize int `koanf:"max_batch_size"`

	// BatchTimeoutMS bounds a synchronous batch.
	BatchTimeoutMS int `koanf:"batch_timeout_ms"`

	// ReferencePath is an optional YAML file layered over the built-in
	// reference tables.
	ReferencePath string `koanf:"reference_path"`

	// SeasonReferences maps a season (as a string key) to its own reference
	// file.
	SeasonReferences map[string]string `koanf:"season_references"`

	// ReferenceReloadSchedule is a cron spec for reloading reference files.
	// Empty disables reloading.
	ReferenceReloadSchedule string `koanf:"reference_reload_schedule"`

	// DefaultArchetype is used when a request names none or an unknown one.
	DefaultArchetype string `koanf:"default_archetype"`

	// Archetypes adds or overrides pillar weightings by name.
	Archetypes map[string]Archetype `koanf:"archetypes"`

	// Breakpoints recalibrates performance bands: position -> stat -> band.
	Breakpoints map[string]map[string][]Breakpoint `koanf:"breakpoints"`
}

// New creates a Config with defaults. Context is accepted first to follow
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		QueueSize:           10_000,
		WorkerCount:         runtime.NumCPU() * 2,
		DedupeSize:          100_000,
		ShardCount:          8,
		MaxLeaderboardLimit: 100,
		MaxBatchSize:        500,
		BatchTimeoutMS:      10_000,
		DefaultArchetype:    "balanced",
	}
}
