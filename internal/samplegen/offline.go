package samplegen

import (
	"context"
	"fmt"

	"github.com/okian/varsity/internal/domain/reference"
	"github.com/okian/varsity/internal/domain/valuation"
	"github.com/okian/varsity/pkg/logger"
)

// batchFunc values one batch and reports it in the API response shape.
type batchFunc func(ctx context.Context, reqs []valuation.Request) (*BatchResponse, error)

// engineBatcher values batches in process, without a running service.
func engineBatcher(cfg *Config) (batchFunc, error) {
	catalog, err := reference.LoadCatalog(cfg.ReferencePath, nil)
	if err != nil {
		return nil, fmt.Errorf("load reference tables: %w", err)
	}
	eng, err := valuation.New(catalog, nil, nil, valuation.WithLogger(logger.Get().Named("engine")))
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, reqs []valuation.Request) (*BatchResponse, error) {
		results := eng.ValueBatch(ctx, reqs, cfg.Workers)
		resp := &BatchResponse{Results: make([]BatchItem, len(results))}
		for i, r := range results {
			item := BatchItem{Index: r.Index, AthleteID: r.AthleteID, Valuation: r.Valuation}
			if r.Err != nil {
				item.Error = &ErrorBody{Code: valuation.KindName(r.Err), Message: r.Err.Error()}
				resp.Failed++
			} else {
				resp.Succeeded++
			}
			resp.Results[i] = item
		}
		return resp, nil
	}, nil
}
