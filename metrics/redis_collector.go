package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisCollector implements the Collector interface for the Redis store
type RedisCollector struct {
	client  *redis.Client
	pattern string
}

// NewRedisCollector creates a new Redis metrics collector
// pattern selects the pending request keys, e.g. approval:*
func NewRedisCollector(client *redis.Client, pattern string) *RedisCollector {
	return &RedisCollector{
		client:  client,
		pattern: pattern,
	}
}

// PendingByType scans pending request keys and counts them by approval type
func (c *RedisCollector) PendingByType(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)

	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, c.pattern, 1000).Result()
		if err != nil {
			return nil, fmt.Errorf("scanning approval keys: %w", err)
		}

		if len(keys) > 0 {
			if err := c.countBatch(ctx, keys, counts); err != nil {
				return nil, err
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return counts, nil
}

// countBatch reads one page of keys with a pipeline
// Keys consumed between SCAN and GET are skipped
func (c *RedisCollector) countBatch(ctx context.Context, keys []string, counts map[string]int64) error {
	pipe := c.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.Get(ctx, key)
	}

	_, err := pipe.Exec(ctx)
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("executing pipeline: %w", err)
	}

	for _, cmd := range cmds {
		data, err := cmd.Bytes()
		if err != nil {
			continue
		}

		var record struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &record); err != nil {
			continue
		}
		counts[record.Type]++
	}

	return nil
}
