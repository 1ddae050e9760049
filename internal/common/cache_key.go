package common

import (
	"context"
	"fmt"

	"github.com/yatube-lab/backend/pkg/xcontext"
)

// PageCacheKey returns the cache key of a paginated page. The first load by
// an anonymous viewer uses prefix as-is. Pages of logged in viewers are kept
// apart because the header shows the viewer.
func PageCacheKey(prefix string) func(ctx context.Context) string {
	return func(ctx context.Context) string {
		key := prefix
		if query := xcontext.HTTPRequest(ctx).URL.Query(); query.Has("page") {
			key = fmt.Sprintf("%s:page=%s", key, query.Get("page"))
		}

		if userID := xcontext.RequestUserID(ctx); userID != "" {
			key = fmt.Sprintf("%s:user=%s", key, userID)
		}

		return key
	}
}
