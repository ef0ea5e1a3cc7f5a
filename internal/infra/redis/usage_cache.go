package redis

import (
	"context"
	"encoding/json"
	"time"

	"ai-chat-dashboard/internal/domain"
	"ai-chat-dashboard/internal/domain/model"
	"ai-chat-dashboard/internal/domain/ports/repository"
	"ai-chat-dashboard/internal/infra/metrics"
)

var _ repository.UsageSummaryCache = (*UsageCache)(nil)

// UsageCache keeps a per-user usage summary with a TTL, invalidated on
// every new ledger write.
type UsageCache struct {
	client RedisClient
	ttl    time.Duration
}

func NewUsageCache(client RedisClient, ttl time.Duration) *UsageCache {
	return &UsageCache{client: client, ttl: ttl}
}

func usageKey(userID string) string { return "usage_summary:" + userID }

func (c *UsageCache) Get(ctx context.Context, userID string) (*model.UsageSummary, error) {
	data, err := c.client.Get(ctx, usageKey(userID))
	if err != nil {
		metrics.IncCacheRequest("usage_summary", "miss")
		if IsNil(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var s model.UsageSummary
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, err
	}
	metrics.IncCacheRequest("usage_summary", "hit")
	return &s, nil
}

func (c *UsageCache) Set(ctx context.Context, userID string, s *model.UsageSummary) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, usageKey(userID), data, c.ttl)
}

func (c *UsageCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, usageKey(userID))
}
