package repository

// DefaultShardCount is used when no shard count is configured.
const DefaultShardCount = 8

// Option applies a configuration option to the ShardedStore.
type Option func(*ShardedStore)

// WithShardCount sets the number of shards. Values below 1 are ignored.
func WithShardCount(n int) Option {
	return func(s *ShardedStore) {
		if n > 0 {
			s.shardCount = n
		}
	}
}
