// Package worker computes queued valuations and writes them to the store.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/varsity/internal/adapters/mq/queue"
	"github.com/okian/varsity/internal/domain/model"
	"github.com/okian/varsity/internal/domain/valuation"
	"github.com/okian/varsity/pkg/logger"
	"github.com/okian/varsity/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	poolShutdownTimeout     = 30 * time.Second
)

// Valuer computes one valuation. Implementations stamp run id and time.
type Valuer interface {
	Value(ctx context.Context, req valuation.Request) (model.Valuation, error)
}

// Putter stores a computed valuation.
type Putter interface {
	Put(ctx context.Context, v *model.Valuation) (bool, error)
}

// FailureHandler is told about every job that did not produce a stored
// valuation.
type FailureHandler func(ctx context.Context, j queue.Job, err error)

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Worker processes jobs until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown stops the worker after the job in hand.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing valuation jobs.
type InMemoryWorker struct {
	queue  Queue
	valuer Valuer
	store  Putter
	name   string

	onFailure FailureHandler

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, valuer Valuer, store Putter, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		valuer:   valuer,
		store:    store,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			out := w.process(ctx, j)
			if out.Err != nil {
				w.logger.Error(ctx, "valuation job failed",
					logger.String("job_id", j.ID),
					logger.String("athlete_id", j.Request.Athlete.ID),
					logger.Error(out.Err),
				)
				if w.onFailure != nil {
					w.onFailure(ctx, j, out.Err)
				}
			}
			if j.Reply != nil && !j.Deliver(out) {
				w.logger.Warn(ctx, "reply channel full, outcome dropped", logger.String("job_id", j.ID))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *InMemoryWorker) process(ctx context.Context, j queue.Job) queue.Outcome { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if !j.Deadline.IsZero() {
		if !time.Now().Before(j.Deadline) {
			metrics.RecordValuationError(valuation.KindName(valuation.ErrCanceled))
			metrics.RecordWorkerError()
			return queue.Outcome{JobID: j.ID, Err: &valuation.Error{
				AthleteID: j.Request.Athlete.ID,
				Kind:      valuation.ErrCanceled,
				Err:       fmt.Errorf("%w: %w", valuation.ErrCanceled, context.DeadlineExceeded),
			}}
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, j.Deadline)
		defer cancel()
	}

	v, err := w.valuer.Value(ctx, j.Request)
	if err != nil {
		metrics.RecordValuationError(valuation.KindName(err))
		metrics.RecordWorkerError()
		return queue.Outcome{JobID: j.ID, Err: err}
	}
	metrics.RecordValuation(string(v.Sport), float64(time.Since(start).Microseconds())/1000,
		v.WAR.WAR, v.CombinedValue.InexactFloat64(), len(v.Warnings))
	if v.Position == model.Unknown {
		metrics.RecordUndefinedPosition()
	}

	if _, err := w.store.Put(ctx, &v); err != nil {
		metrics.RecordWorkerError()
		return queue.Outcome{JobID: j.ID, Err: fmt.Errorf("store valuation: %w", err)}
	}
	return queue.Outcome{JobID: j.ID, Valuation: &v}
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates a new worker pool. workerCount < 1 uses twice the CPU count.
// opts apply to every worker.
func NewPool(workerCount int, q Queue, valuer Valuer, store Putter, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		wopts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		pool.workers[i] = NewInMemoryWorker(q, valuer, store, wopts...)
	}
	metrics.UpdateWorkerCount(workerCount)
	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Shutdown closes the queue and waits for workers to drain it.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var errs []error
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			errs = append(errs, fmt.Errorf("worker %d: %w", i, shutdownCtx.Err()))
		}
	}
	metrics.UpdateWorkerCount(0)
	return errors.Join(errs...)
}
