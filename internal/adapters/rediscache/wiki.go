// Package rediscache provides Redis-backed read-through caches for the
// slower outbound ports.
package rediscache

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	portwiki "github.com/safarino/trip-planner-core/internal/ports/out/wiki"
)

const wikiKeyPrefix = "wiki:dest:"

// WikiCache caches destination summaries in front of a wiki.Service. Cache
// failures degrade to the underlying service, never to an error.
type WikiCache struct {
	client *redis.Client
	next   portwiki.Service
	ttl    time.Duration
	log    *zap.Logger
}

func NewWikiCache(client *redis.Client, next portwiki.Service, ttl time.Duration, log *zap.Logger) *WikiCache {
	return &WikiCache{client: client, next: next, ttl: ttl, log: log}
}

func (c *WikiCache) DestinationBasicInfo(ctx context.Context, destination string) (string, error) {
	key := wikiKeyPrefix + strings.ToLower(strings.TrimSpace(destination))

	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		return cached, nil
	case err != redis.Nil:
		c.log.Warn("wiki cache read failed", zap.String("key", key), zap.Error(err))
	}

	text, err := c.next.DestinationBasicInfo(ctx, destination)
	if err != nil {
		return "", err
	}
	if text != "" {
		if err := c.client.Set(ctx, key, text, c.ttl).Err(); err != nil {
			c.log.Warn("wiki cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return text, nil
}
