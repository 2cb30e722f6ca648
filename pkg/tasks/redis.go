package tasks

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSink publishes metric snapshots to redis under metrics:<name> keys so
// external consumers can read the latest values without touching the store.
type RedisSink struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSink wraps the given client. Keys expire after ttl; pass 0 to keep
// them until the next recompute overwrites them.
func NewRedisSink(client *redis.Client, ttl time.Duration) *RedisSink {
	return &RedisSink{client: client, ttl: ttl}
}

// PublishMetrics writes each metric as a formatted float.
func (s *RedisSink) PublishMetrics(ctx context.Context, metrics map[string]float64) error {
	for name, value := range metrics {
		v := strconv.FormatFloat(value, 'f', 2, 64)
		if err := s.client.Set(ctx, "metrics:"+name, v, s.ttl).Err(); err != nil {
			return err
		}
	}
	return nil
}
