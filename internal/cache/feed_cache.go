package cache

import (
	"context"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/shopshout/shopshout/internal/observability/logger"
	"go.uber.org/zap"
)

const feedKeyPrefix = "feed:"

// FeedCache stores rendered XML documents so feed requests do not hit the
// database on every poll.
type FeedCache interface {
	Get(ctx context.Context, name string) ([]byte, bool)
	Set(ctx context.Context, name string, body []byte, ttl time.Duration)
	Invalidate(ctx context.Context, name string)
}

// NewFeedCache is redis-backed when a client is available, otherwise it
// keeps entries in process memory.
func NewFeedCache(client *redis.Client, log *zap.Logger) FeedCache {
	if client == nil {
		return &memoryFeedCache{entries: NewTTLCache[string, []byte]()}
	}
	return &redisFeedCache{client: client, log: log}
}

type redisFeedCache struct {
	client *redis.Client
	log    *zap.Logger
}

func (c *redisFeedCache) Get(ctx context.Context, name string) ([]byte, bool) {
	body, err := c.client.Get(ctx, feedKeyPrefix+name).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.WithContext(ctx, c.log).Warn("feed cache get", zap.String("feed", name), zap.Error(err))
		}
		return nil, false
	}
	return body, true
}

func (c *redisFeedCache) Set(ctx context.Context, name string, body []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := c.client.Set(ctx, feedKeyPrefix+name, body, ttl).Err(); err != nil {
		logger.WithContext(ctx, c.log).Warn("feed cache set", zap.String("feed", name), zap.Error(err))
	}
}

func (c *redisFeedCache) Invalidate(ctx context.Context, name string) {
	if err := c.client.Del(ctx, feedKeyPrefix+name).Err(); err != nil {
		logger.WithContext(ctx, c.log).Warn("feed cache invalidate", zap.String("feed", name), zap.Error(err))
	}
}

type memoryFeedCache struct {
	entries Cache[string, []byte]
}

func (c *memoryFeedCache) Get(_ context.Context, name string) ([]byte, bool) {
	return c.entries.Get(name)
}

func (c *memoryFeedCache) Set(_ context.Context, name string, body []byte, ttl time.Duration) {
	c.entries.Set(name, body, ttl)
}

func (c *memoryFeedCache) Invalidate(_ context.Context, name string) {
	c.entries.Delete(name)
}
