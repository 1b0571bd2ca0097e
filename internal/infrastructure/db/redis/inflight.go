package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultInflightTTL = 2 * time.Minute

// InflightGuard is a ports.InflightGuard shared across replicas. Keys expire
// after ttl so a crashed holder cannot block a session forever.
type InflightGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewInflightGuard wraps client. A non-positive ttl selects the default.
func NewInflightGuard(client *redis.Client, ttl time.Duration) *InflightGuard {
	if ttl <= 0 {
		ttl = defaultInflightTTL
	}
	return &InflightGuard{client: client, ttl: ttl}
}

func (g *InflightGuard) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, key, "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("inflight acquire: %w", err)
	}
	return ok, nil
}

func (g *InflightGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("inflight release: %w", err)
	}
	return nil
}
