package service

import (
	"time"

	"github.com/okian/varsity/internal/config"
	"github.com/okian/varsity/internal/domain/ensemble"
	"github.com/okian/varsity/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig applies every service-level setting from cfg.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg == nil {
			return
		}
		for _, opt := range []Option{
			WithWorkerCount(cfg.WorkerCount),
			WithQueueSize(cfg.QueueSize),
			WithDedupeSize(cfg.DedupeSize),
			WithShardCount(cfg.ShardCount),
			WithMaxLeaderboardLimit(cfg.MaxLeaderboardLimit),
			WithMaxBatchSize(cfg.MaxBatchSize),
			WithBatchTimeout(time.Duration(cfg.BatchTimeoutMS) * time.Millisecond),
			WithReferences(cfg.ReferencePath, cfg.SeasonReferences),
			WithReloadSchedule(cfg.ReferenceReloadSchedule),
			WithArchetypes(cfg.DefaultArchetype, cfg.ArchetypeList()...),
			WithBreakpoints(cfg.Breakpoints),
		} {
			opt(s)
		}
	}
}

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the request-id cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithShardCount sets the number of store shards.
func WithShardCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithMaxLeaderboardLimit caps leaderboard queries.
func WithMaxLeaderboardLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxLeaderboardLimit = limit
		}
	}
}

// WithMaxBatchSize caps synchronous batches.
func WithMaxBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.maxBatchSize = size
		}
	}
}

// WithBatchTimeout bounds a synchronous batch.
func WithBatchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.batchTimeout = d
		}
	}
}

// WithReferences sets the default reference file and per-season files.
func WithReferences(path string, seasons map[string]string) Option {
	return func(s *Service) {
		s.referencePath = path
		s.seasonReferences = seasons
	}
}

// WithReloadSchedule sets the cron spec for reference reloads.
func WithReloadSchedule(spec string) Option {
	return func(s *Service) {
		s.reloadSchedule = spec
	}
}

// WithArchetypes sets the default archetype and extra weightings.
func WithArchetypes(def string, extra ...ensemble.Archetype) Option {
	return func(s *Service) {
		if def != "" {
			s.defaultArchetype = def
		}
		s.archetypes = extra
	}
}

// WithBreakpoints recalibrates performance bands.
func WithBreakpoints(bp map[string]map[string][]config.Breakpoint) Option {
	return func(s *Service) {
		s.breakpoints = bp
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now for stamping valuations.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
