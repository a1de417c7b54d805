package samplegen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/okian/varsity/internal/domain/valuation"
	"github.com/okian/varsity/pkg/logger"
)

// ErrViolations is returned when any valuation breaks a bound.
var ErrViolations = errors.New("valuations violate bounds")

const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// Run generates cfg.NumAthletes requests, values them in batches and
// verifies every returned valuation. Batches go to the service unless
// cfg.Offline is set.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	log := logger.Get().Named("samplegen")
	stats := &Stats{StartTime: time.Now(), ErrorsByCode: map[string]int{}}

	log.Info(ctx, "starting sample batch run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("athletes", cfg.NumAthletes),
		logger.Int("batchSize", cfg.BatchSize),
		logger.Int("workers", cfg.Workers),
		logger.Int("seed", int(cfg.Seed)),
		logger.Bool("offline", cfg.Offline))

	valueBatch, err := batcher(ctx, cfg)
	if err != nil {
		return stats, err
	}

	reqs := NewGenerator(cfg.Seed).Generate(cfg.NumAthletes)
	stats.Generated = len(reqs)

	if cfg.OutputFile != "" {
		if err := saveRequests(cfg.OutputFile, reqs); err != nil {
			log.Warn(ctx, "failed to save requests", logger.Error(err))
		}
	}

	var (
		mu  sync.Mutex
		top decimal.Decimal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, cfg.Workers))
	for _, batch := range chunk(reqs, cfg.BatchSize) {
		batch := batch
		g.Go(func() error {
			resp, err := valueBatch(gctx, batch)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			stats.Batches++
			stats.Succeeded += resp.Succeeded
			stats.Failed += resp.Failed
			for _, item := range resp.Results {
				if item.Error != nil {
					stats.ErrorsByCode[item.Error.Code]++
					continue
				}
				if item.Valuation == nil {
					continue
				}
				stats.Violations = append(stats.Violations, Verify(item.Valuation, cfg.Floors)...)
				if item.Valuation.CombinedValue.GreaterThan(top) {
					top = item.Valuation.CombinedValue
					stats.TopAthlete = item.AthleteID
					stats.TopValue = top.StringFixed(2)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, fmt.Errorf("batch submission failed: %w", err)
	}
	stats.Duration = time.Since(stats.StartTime)

	log.Info(ctx, "sample batch run finished",
		logger.Int("generated", stats.Generated),
		logger.Int("batches", stats.Batches),
		logger.Int("succeeded", stats.Succeeded),
		logger.Int("failed", stats.Failed),
		logger.Int("violations", len(stats.Violations)),
		logger.Any("errorsByCode", stats.ErrorsByCode),
		logger.String("topAthlete", stats.TopAthlete),
		logger.String("topValue", stats.TopValue),
		logger.Duration("duration", stats.Duration))

	if len(stats.Violations) > 0 {
		for _, v := range stats.Violations {
			log.Error(ctx, "bound violated", logger.String("detail", v))
		}
		return stats, fmt.Errorf("%w: %d", ErrViolations, len(stats.Violations))
	}
	return stats, nil
}

func batcher(ctx context.Context, cfg *Config) (batchFunc, error) {
	if cfg.Offline {
		return engineBatcher(cfg)
	}
	client := NewClient(cfg.BaseURL, cfg.Timeout)
	if err := client.Health(ctx); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}
	return client.ValueBatch, nil
}

func chunk(reqs []valuation.Request, size int) [][]valuation.Request {
	if size <= 0 {
		size = len(reqs)
	}
	var out [][]valuation.Request
	for start := 0; start < len(reqs); start += size {
		end := min(start+size, len(reqs))
		out = append(out, reqs[start:end])
	}
	return out
}

func saveRequests(path string, reqs []valuation.Request) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(reqs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, filePermission)
}
