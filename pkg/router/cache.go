package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/yatube-lab/backend/pkg/pagecache"
)

var errNotCacheable = errors.New("response is not cacheable")

type serveFunc func(ctx context.Context, w http.ResponseWriter, req *http.Request) context.Context

// serveCached sends the cached page if there is one. Otherwise it serves the
// request and caches the page if it succeeded.
func serveCached(
	ctx context.Context, policy *cachePolicy, w http.ResponseWriter, req *http.Request, serve serveFunc,
) context.Context {
	var rendered *bufferedWriter
	finalCtx := ctx

	body, err := pagecache.GetOrRender(ctx, policy.cache, policy.key(ctx), policy.ttl, func() ([]byte, error) {
		rendered = newBufferedWriter()
		finalCtx = serve(ctx, rendered, req)
		if rendered.status != http.StatusOK {
			return nil, errNotCacheable
		}

		return rendered.body.Bytes(), nil
	})

	if rendered != nil {
		rendered.copyTo(w)
		return finalCtx
	}

	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return ctx
	}

	w.Header().Set("Content-Type", htmlContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
	return ctx
}
