package pagecache

import (
	"context"
	"time"

	"github.com/yatube-lab/backend/pkg/xredis"
)

// redisKeyPrefix is the namespace of pages, so Clear keeps other keys.
const redisKeyPrefix = "pagecache:"

type redisCache struct {
	client xredis.Client
}

func NewRedisCache(client xredis.Client) *redisCache {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.client.Get(ctx, redisKeyPrefix+key)
}

func (c *redisCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	return c.client.SetEX(ctx, redisKeyPrefix+key, body, ttl)
}

func (c *redisCache) Clear(ctx context.Context) error {
	keys, err := c.client.Scan(ctx, redisKeyPrefix+"*")
	if err != nil {
		return err
	}

	return c.client.Del(ctx, keys...)
}
