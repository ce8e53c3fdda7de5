package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"learner-practice-portal/internal/domain"
	"learner-practice-portal/internal/domain/model"
	"learner-practice-portal/internal/domain/ports/repository"
	"learner-practice-portal/internal/infra/metrics"
)

var _ repository.UsageCache = (*UsageCache)(nil)

// UsageCache is the device-local fallback store for daily usage records,
// used while the remote table is unreachable. Entries expire after the
// TTL since a day's counters are worthless once the day has passed.
type UsageCache struct {
	client RedisClient
	ttl    time.Duration
}

func NewUsageCache(client RedisClient, ttl time.Duration) *UsageCache {
	return &UsageCache{client: client, ttl: ttl}
}

func usageKey(userID, date string) string {
	return fmt.Sprintf("usage:%s:%s", userID, date)
}

func (c *UsageCache) Get(ctx context.Context, userID, date string) (*model.DailyUsage, error) {
	data, err := c.client.Get(ctx, usageKey(userID, date))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.IncCacheRequest("usage", "miss")
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var u model.DailyUsage
	if err := json.Unmarshal([]byte(data), &u); err != nil {
		return nil, fmt.Errorf("decode cached usage: %w", err)
	}
	metrics.IncCacheRequest("usage", "hit")
	return &u, nil
}

func (c *UsageCache) Put(ctx context.Context, u *model.DailyUsage) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, usageKey(u.UserID, u.Date), data, c.ttl)
}

func (c *UsageCache) Delete(ctx context.Context, userID, date string) error {
	return c.client.Del(ctx, usageKey(userID, date))
}
