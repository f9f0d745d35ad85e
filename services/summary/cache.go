package summary

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/models"
)

const cacheKeyPrefix = "tracker:summary:"

// Cache keeps chart summaries between refreshes.
type Cache interface {
	Get(ctx context.Context, kind enum.SummaryKind) (*models.Summary, error)
	Set(ctx context.Context, kind enum.SummaryKind, summary models.Summary) error
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache returns nil when client is nil so callers can skip caching.
func NewRedisCache(client *redis.Client, ttl time.Duration) Cache {
	if client == nil {
		return nil
	}
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, kind enum.SummaryKind) (*models.Summary, error) {
	raw, err := c.client.Get(ctx, cacheKeyPrefix+kind.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read cached summary")
	}

	var summary models.Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, errors.Wrap(err, "decode cached summary")
	}
	return &summary, nil
}

func (c *redisCache) Set(ctx context.Context, kind enum.SummaryKind, summary models.Summary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return errors.Wrap(err, "encode summary")
	}
	return errors.Wrap(c.client.Set(ctx, cacheKeyPrefix+kind.String(), raw, c.ttl).Err(), "cache summary")
}
