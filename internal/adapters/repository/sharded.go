package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"

	"github.com/okian/varsity/internal/domain/model"
	"github.com/okian/varsity/internal/domain/types"
	"github.com/okian/varsity/pkg/metrics"
)

// ShardedStore keeps valuations in shards keyed by athlete id, so every
// season of one athlete lives in the same shard.
type ShardedStore struct {
	shardCount int
	shards     []*shard
	count      atomic.Int64
}

type shard struct {
	mu       sync.RWMutex
	athletes map[string]map[int]*model.Valuation
}

// NewShardedStore creates an empty store.
func NewShardedStore(opts ...Option) *ShardedStore {
	s := &ShardedStore{shardCount: DefaultShardCount}
	for _, opt := range opts {
		opt(s)
	}
	s.shards = make([]*shard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{athletes: make(map[string]map[int]*model.Valuation)}
	}
	metrics.UpdateStoreShards(s.shardCount)
	return s
}

func (s *ShardedStore) shardFor(athleteID string) *shard {
	return s.shards[xxhash.Sum64String(athleteID)%uint64(len(s.shards))]
}

func (s *ShardedStore) Put(_ context.Context, v *model.Valuation) (bool, error) {
	if v == nil || v.AthleteID == "" {
		return false, fmt.Errorf("%w: missing athlete id", ErrInvalidValuation)
	}
	if v.Season <= 0 {
		return false, fmt.Errorf("%w: season %d", ErrInvalidValuation, v.Season)
	}

	sh := s.shardFor(v.AthleteID)
	sh.mu.Lock()
	seasons, ok := sh.athletes[v.AthleteID]
	if !ok {
		seasons = make(map[int]*model.Valuation)
		sh.athletes[v.AthleteID] = seasons
	}
	prev, exists := seasons[v.Season]
	if exists && prev.ComputedAt.After(v.ComputedAt) {
		sh.mu.Unlock()
		return false, nil
	}
	seasons[v.Season] = v
	sh.mu.Unlock()

	if !exists {
		metrics.UpdateStoreRecords(int(s.count.Add(1)))
	}
	return true, nil
}

func (s *ShardedStore) Get(_ context.Context, athleteID string, season int) (*model.Valuation, error) {
	sh := s.shardFor(athleteID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	v, ok := sh.athletes[athleteID][season]
	if !ok {
		return nil, fmt.Errorf("%w: %s season %d", ErrNotFound, athleteID, season)
	}
	return v, nil
}

func (s *ShardedStore) Latest(_ context.Context, athleteID string) (*model.Valuation, error) {
	sh := s.shardFor(athleteID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	var latest *model.Valuation
	for season, v := range sh.athletes[athleteID] {
		if latest == nil || season > latest.Season {
			latest = v
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, athleteID)
	}
	return latest, nil
}

func (s *ShardedStore) TopN(ctx context.Context, n int, position model.Position) ([]types.Entry, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}
	out := make([]types.Entry, 0, n)
	for _, sh := range s.shards {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sh.mu.RLock()
		for _, seasons := range sh.athletes {
			for _, v := range seasons {
				if position != "" && v.Position != position {
					continue
				}
				out = append(out, types.EntryFrom(v))
			}
		}
		sh.mu.RUnlock()
	}
	sort.Slice(out, func(i, j int) bool { return types.Less(out[i], out[j]) })
	if len(out) > n {
		out = out[:n]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

func (s *ShardedStore) Count(context.Context) int {
	return int(s.count.Load())
}
