// Package service wires the valuation engine, job queue, worker pool and
// store into the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	jobqueue "github.com/okian/varsity/internal/adapters/mq/queue"
	workerpool "github.com/okian/varsity/internal/adapters/mq/worker"
	"github.com/okian/varsity/internal/adapters/repository"
	"github.com/okian/varsity/internal/config"
	"github.com/okian/varsity/internal/domain/dedupe"
	"github.com/okian/varsity/internal/domain/ensemble"
	"github.com/okian/varsity/internal/domain/model"
	"github.com/okian/varsity/internal/domain/performance"
	"github.com/okian/varsity/internal/domain/reference"
	"github.com/okian/varsity/internal/domain/types"
	"github.com/okian/varsity/internal/domain/valuation"
	"github.com/okian/varsity/pkg/logger"
	"github.com/okian/varsity/pkg/metrics"
)

// Service implements the API dependencies for the valuation system.
type Service struct {
	mu sync.RWMutex

	engine  atomic.Pointer[valuation.Engine]
	store   *repository.ShardedStore
	deduper dedupe.Deduper
	queue   *jobqueue.InMemoryQueue
	pool    *workerpool.Pool
	cron    *cron.Cron

	workerCount         int
	queueSize           int
	dedupeSize          int
	shardCount          int
	maxLeaderboardLimit int
	maxBatchSize        int
	batchTimeout        time.Duration
	referencePath       string
	seasonReferences    map[string]string
	reloadSchedule      string
	defaultArchetype    string
	archetypes          []ensemble.Archetype
	breakpoints         map[string]map[string][]config.Breakpoint

	now     func() time.Time
	started bool
	logger  logger.Logger
}

// SubmitResult acknowledges an async submission.
type SubmitResult struct {
	JobID     string `json:"job_id"`
	RequestID string `json:"request_id"`
	Duplicate bool   `json:"duplicate"`
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:         runtime.NumCPU() * 2,
		queueSize:           10_000,
		dedupeSize:          dedupe.DefaultMaxSize,
		shardCount:          repository.DefaultShardCount,
		maxLeaderboardLimit: 500,
		maxBatchSize:        100,
		batchTimeout:        10 * time.Second,
		defaultArchetype:    ensemble.Balanced,
		now:                 time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the engine and starts the worker pool and reload schedule.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting valuation service...")

	eng, err := s.buildEngine()
	if err != nil {
		return err
	}
	s.engine.Store(eng)

	s.cron = nil
	if s.reloadSchedule != "" {
		c := cron.New()
		if _, err := c.AddFunc(s.reloadSchedule, func() {
			_ = s.Reload(context.Background())
		}); err != nil {
			return fmt.Errorf("invalid reference reload schedule %q: %w", s.reloadSchedule, err)
		}
		s.cron = c
	}

	s.store = repository.NewShardedStore(repository.WithShardCount(s.shardCount))
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = jobqueue.NewInMemoryQueue(jobqueue.WithCapacity(s.queueSize))
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s, s.store, workerpool.WithFailureHandler(s.jobFailed))
	s.pool.Start(ctx)
	if s.cron != nil {
		s.cron.Start()
	}

	s.started = true
	s.logger.Info(ctx, "valuation service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queue_size", s.queueSize),
		logger.Int("dedupe_size", s.dedupeSize),
		logger.Int("shards", s.shardCount),
		logger.Strings("archetypes", eng.Archetypes().Names()),
	)
	return nil
}

// Stop drains the queue and stops the workers and reload schedule.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping valuation service...")

	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	err := s.pool.Shutdown(ctx)

	s.started = false
	s.logger.Info(ctx, "valuation service stopped")
	return err
}

func (s *Service) buildEngine() (*valuation.Engine, error) {
	catalog, err := reference.LoadCatalog(s.referencePath, s.seasonReferences)
	if err != nil {
		return nil, fmt.Errorf("load reference tables: %w", err)
	}

	var opts []performance.Option
	for pos, stats := range s.breakpoints {
		for stat, points := range stats {
			band := make(performance.Band, len(points))
			for i, p := range points {
				band[i] = performance.Breakpoint(p)
			}
			opts = append(opts, performance.WithBreakpoints(model.Position(strings.ToUpper(pos)), stat, band))
		}
	}
	registry, err := performance.NewRegistry(opts...)
	if err != nil {
		return nil, fmt.Errorf("calibrate performance bands: %w", err)
	}

	set, err := ensemble.NewSet(s.defaultArchetype, s.archetypes...)
	if err != nil {
		return nil, fmt.Errorf("build archetypes: %w", err)
	}
	return valuation.New(catalog, registry, set, valuation.WithLogger(s.logger.Named("engine")))
}

// Reload rebuilds the engine from the reference files. On failure the
// previous engine keeps serving.
func (s *Service) Reload(ctx context.Context) error {
	eng, err := s.buildEngine()
	if err != nil {
		metrics.RecordReferenceReload("error")
		s.logger.Error(ctx, "reference reload failed, keeping previous tables", logger.Error(err))
		return err
	}
	s.engine.Store(eng)
	metrics.RecordReferenceReload("ok")
	s.logger.Info(ctx, "reference tables reloaded")
	return nil
}

func (s *Service) currentEngine() (*valuation.Engine, error) {
	eng := s.engine.Load()
	if eng == nil {
		return nil, ErrNotStarted
	}
	return eng, nil
}

// Value computes and stamps one valuation. Workers call it for queued jobs.
func (s *Service) Value(ctx context.Context, req valuation.Request) (model.Valuation, error) {
	eng, err := s.currentEngine()
	if err != nil {
		return model.Valuation{}, err
	}
	v, err := eng.Value(ctx, req)
	if err != nil {
		return model.Valuation{}, err
	}
	s.stamp(&v)
	return v, nil
}

func (s *Service) stamp(v *model.Valuation) {
	v.RunID = uuid.NewString()
	v.ComputedAt = s.now().UTC()
}

// WAR returns the WAR preview for req without storing anything.
func (s *Service) WAR(ctx context.Context, req valuation.Request) (model.WARResult, error) {
	eng, err := s.currentEngine()
	if err != nil {
		return model.WARResult{}, err
	}
	return eng.WAR(ctx, req)
}

// RequestID derives the idempotency key of a submission.
func RequestID(explicit string, req valuation.Request) string {
	if id := strings.TrimSpace(explicit); id != "" {
		return id
	}
	arch := strings.ToLower(strings.TrimSpace(req.Archetype))
	if arch == "" {
		arch = "default"
	}
	return fmt.Sprintf("%s:%d:%s", req.Athlete.ID, req.Record.Season, arch)
}

// Submit validates req and queues it for async valuation. A repeated
// request id is acknowledged as a duplicate without queueing.
func (s *Service) Submit(ctx context.Context, requestID string, req valuation.Request) (SubmitResult, error) {
	if !s.isStarted() {
		return SubmitResult{}, ErrNotStarted
	}
	if err := req.Validate(); err != nil {
		return SubmitResult{}, err
	}

	id := RequestID(requestID, req)
	if s.deduper.SeenAndRecord(ctx, id) {
		metrics.RecordJobDuplicate()
		return SubmitResult{RequestID: id, Duplicate: true}, nil
	}

	job := jobqueue.Job{ID: uuid.NewString(), Request: req, DedupeKey: id}
	if !s.queue.Enqueue(ctx, job) {
		s.deduper.Unrecord(ctx, id)
		return SubmitResult{}, ErrBackpressure
	}
	return SubmitResult{JobID: job.ID, RequestID: id}, nil
}

// jobFailed forgets the request id of a failed async job so the
// submission can be retried.
func (s *Service) jobFailed(ctx context.Context, j jobqueue.Job, _ error) { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	if j.DedupeKey != "" {
		s.deduper.Unrecord(ctx, j.DedupeKey)
	}
}

// ValueBatch values reqs on the worker pool and waits for every athlete.
// Workers stamp and store each success. Failed athletes carry their own
// error; the batch itself only fails on size.
func (s *Service) ValueBatch(ctx context.Context, reqs []valuation.Request) ([]valuation.BatchResult, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	switch {
	case len(reqs) == 0:
		return nil, ErrEmptyBatch
	case len(reqs) > s.maxBatchSize:
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(reqs), s.maxBatchSize)
	}
	if _, err := s.currentEngine(); err != nil {
		return nil, err
	}
	metrics.RecordBatchSize(len(reqs))

	ctx, cancel := context.WithTimeout(ctx, s.batchTimeout)
	defer cancel()
	deadline, _ := ctx.Deadline()

	results := make([]valuation.BatchResult, len(reqs))
	replies := make(chan jobqueue.Outcome, len(reqs))
	index := make(map[string]int, len(reqs))
	for i := range reqs {
		results[i] = valuation.BatchResult{Index: i, AthleteID: reqs[i].Athlete.ID}
		if ctx.Err() != nil {
			results[i].Err = canceled(reqs[i].Athlete.ID, ctx.Err())
			continue
		}
		job := jobqueue.Job{ID: uuid.NewString(), Request: reqs[i], Deadline: deadline, Reply: replies}
		if !s.queue.Enqueue(ctx, job) {
			results[i].Err = fmt.Errorf("athlete %s: %w", reqs[i].Athlete.ID, ErrBackpressure)
			continue
		}
		index[job.ID] = i
	}

	for len(index) > 0 {
		select {
		case out := <-replies:
			i, ok := index[out.JobID]
			if !ok {
				continue
			}
			delete(index, out.JobID)
			results[i].Valuation, results[i].Err = out.Valuation, out.Err
		case <-ctx.Done():
			for _, i := range index {
				results[i].Err = canceled(reqs[i].Athlete.ID, ctx.Err())
			}
			s.logger.Warn(ctx, "batch timed out before every athlete was valued",
				logger.Int("pending", len(index)), logger.Int("batch_size", len(reqs)))
			return results, nil
		}
	}
	return results, nil
}

func canceled(athleteID string, cause error) *valuation.Error {
	return &valuation.Error{
		AthleteID: athleteID,
		Kind:      valuation.ErrCanceled,
		Err:       fmt.Errorf("%w: %w", valuation.ErrCanceled, cause),
	}
}

// Valuation returns the stored valuation for athleteID. Season 0 means the
// most recent season.
func (s *Service) Valuation(ctx context.Context, athleteID string, season int) (*model.Valuation, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	if season == 0 {
		return s.store.Latest(ctx, athleteID)
	}
	return s.store.Get(ctx, athleteID, season)
}

// Leaderboard returns the top entries by combined value. Limits above the
// configured maximum are capped.
func (s *Service) Leaderboard(ctx context.Context, limit int, position string) ([]types.Entry, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	if limit > s.maxLeaderboardLimit {
		limit = s.maxLeaderboardLimit
	}
	return s.store.TopN(ctx, limit, model.Position(strings.ToUpper(strings.TrimSpace(position))))
}

// Archetypes lists the archetype names the current engine accepts.
func (s *Service) Archetypes() []string {
	eng := s.engine.Load()
	if eng == nil {
		return nil
	}
	return eng.Archetypes().Names()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":       s.started,
		"workerCount":   s.workerCount,
		"queueCapacity": s.queueSize,
		"dedupeSize":    s.dedupeSize,
		"shardCount":    s.shardCount,
	}
	if !s.started {
		return stats
	}

	ctx := context.Background()
	queueLen := s.queue.Len(ctx)
	records := s.store.Count(ctx)
	stats["queueLength"] = queueLen
	stats["storedValuations"] = records
	stats["dedupeEntries"] = s.deduper.Size()
	stats["archetypes"] = s.Archetypes()

	metrics.UpdateQueueSize(queueLen)
	metrics.UpdateStoreRecords(records)
	return stats
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}
