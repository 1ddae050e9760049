// Package pagecache memoizes rendered pages for a fixed time window.
//
// Entries are never invalidated by data writes: a reader may observe a page
// that is up to ttl old. Entries go away by expiry or by Clear.
package pagecache

import (
	"context"
	"time"

	"github.com/yatube-lab/backend/pkg/xcontext"
)

type Cache interface {
	// Get returns false if the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
	Clear(ctx context.Context) error
}

// GetOrRender returns the cached body of key. On a miss it calls render and
// caches the result, unless render fails. Cache backend failures degrade to a
// miss.
func GetOrRender(
	ctx context.Context, c Cache, key string, ttl time.Duration, render func() ([]byte, error),
) ([]byte, error) {
	body, ok, err := c.Get(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get page %s from cache: %v", key, err)
	} else if ok {
		return body, nil
	}

	body, err = render()
	if err != nil {
		return nil, err
	}

	if err := c.Set(ctx, key, body, ttl); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot set page %s to cache: %v", key, err)
	}

	return body, nil
}
