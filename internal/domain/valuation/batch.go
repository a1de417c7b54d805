package valuation

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/okian/varsity/internal/domain/model"
)

// BatchResult is one athlete's outcome in a batch. Exactly one of
// Valuation and Err is set.
type BatchResult struct {
	Index     int
	AthleteID string
	Valuation *model.Valuation
	Err       error
}

// ValueBatch values every request concurrently with at most parallelism
// goroutines (GOMAXPROCS when <= 0). Results keep request order and a
// failure only marks its own entry.
func (e *Engine) ValueBatch(ctx context.Context, reqs []Request, parallelism int) []BatchResult {
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	out := make([]BatchResult, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i := range reqs {
		i := i
		g.Go(func() error {
			out[i] = BatchResult{Index: i, AthleteID: reqs[i].Athlete.ID}
			v, err := e.Value(gctx, reqs[i])
			if err != nil {
				out[i].Err = err
				return nil
			}
			out[i].Valuation = &v
			return nil
		})
	}
	_ = g.Wait()
	return out
}
