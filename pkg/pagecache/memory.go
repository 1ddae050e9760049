package pagecache

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync"
)

type memoryEntry struct {
	body      []byte
	expiredAt time.Time
}

type memoryCache struct {
	entries *xsync.MapOf[string, memoryEntry]
	now     func() time.Time
}

func NewMemoryCache() *memoryCache {
	return &memoryCache{
		entries: xsync.NewMapOf[memoryEntry](),
		now:     time.Now,
	}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	entry, ok := c.entries.Load(key)
	if !ok {
		return nil, false, nil
	}

	if !c.now().Before(entry.expiredAt) {
		c.entries.Delete(key)
		return nil, false, nil
	}

	return entry.body, true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, body []byte, ttl time.Duration) error {
	c.entries.Store(key, memoryEntry{body: body, expiredAt: c.now().Add(ttl)})
	return nil
}

func (c *memoryCache) Clear(context.Context) error {
	c.entries.Range(func(key string, _ memoryEntry) bool {
		c.entries.Delete(key)
		return true
	})

	return nil
}
