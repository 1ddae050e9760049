package router

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/pagecache"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

// HandlerFunc handles a bound request. A response implementing
// RedirectResponse is sent as a redirect, one implementing PageResponse is
// rendered as HTML, others are sent as JSON.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc may return a nil context to keep the current one.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written, even if the request failed.
type CloserFunc func(ctx context.Context)

type Renderer interface {
	Render(ctx context.Context, w io.Writer, name string, data any) error
}

type cachePolicy struct {
	cache pagecache.Cache
	ttl   time.Duration
	key   func(ctx context.Context) string
}

type Router struct {
	ctx      context.Context
	mux      *http.ServeMux
	renderer Renderer
	options  *options

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
	cache   *cachePolicy
}

type options struct {
	loginURL      string
	errorTemplate func(status int) string
}

// New creates a router. Values of ctx, such as the configs, the logger or
// the database, are visible to every request.
func New(ctx context.Context, renderer Renderer) *Router {
	r := &Router{
		ctx:      ctx,
		mux:      http.NewServeMux(),
		renderer: renderer,
		options:  &options{loginURL: "/login/"},
	}

	r.mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		ctx := r.newContext(w, req)
		err := errorx.New(errorx.NotFound, "Page not found")
		ctx = xcontext.WithError(ctx, err)
		r.writeError(ctx, w, req, err)
		r.runClosers(ctx)
	})

	return r
}

// SetLoginURL changes the page which unauthenticated users are redirected
// to.
func (r *Router) SetLoginURL(url string) {
	r.options.loginURL = url
}

// SetErrorTemplate sets the template of error pages. Errors are written as
// plain text without it.
func (r *Router) SetErrorTemplate(fn func(status int) string) {
	r.options.errorTemplate = fn
}

// Branch returns a router sharing the routes of r. Middlewares added to the
// branch do not affect r.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	clone.afters = append([]MiddlewareFunc{}, r.afters...)
	clone.closers = append([]CloserFunc{}, r.closers...)
	return &clone
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) After(m MiddlewareFunc) {
	r.afters = append(r.afters, m)
}

func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

// CachePage caches successful GET pages of this router under the key
// returned by key. The key is computed after the before middlewares.
func (r *Router) CachePage(cache pagecache.Cache, ttl time.Duration, key func(ctx context.Context) string) {
	r.cache = &cachePolicy{cache: cache, ttl: ttl, key: key}
}

// Static serves files of fsys under prefix, which must end with a slash.
func (r *Router) Static(prefix string, fsys fs.FS) {
	r.mux.Handle("GET "+prefix, http.StripPrefix(prefix, http.FileServer(http.FS(fsys))))
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

// GET registers handler for pattern. A pattern ending with a slash matches
// that path only, never the paths below it.
func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodPost, pattern, handler)
}

func route[Request, Response any](
	r *Router, method, pattern string, handler HandlerFunc[Request, Response],
) {
	pattern = exactPattern(pattern)
	pathNames := pathValueNames(pattern)
	befores, afters, closers := r.befores, r.afters, r.closers

	before := func(ctx context.Context, w http.ResponseWriter, req *http.Request) (context.Context, bool) {
		for _, m := range befores {
			newCtx, err := m(ctx)
			if err != nil {
				ctx = xcontext.WithError(ctx, err)
				r.writeError(ctx, w, req, err)
				return ctx, false
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		return ctx, true
	}

	serve := func(ctx context.Context, w http.ResponseWriter, req *http.Request) context.Context {
		ctx = xcontext.WithHTTPWriter(ctx, w)

		request, err := bind[Request](ctx, req, pathNames)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			r.writeError(ctx, w, req, err)
			return ctx
		}

		response, err := handler(ctx, request)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			r.writeError(ctx, w, req, err)
			return ctx
		}

		if response == nil {
			w.WriteHeader(http.StatusNoContent)
			return ctx
		}

		ctx = xcontext.WithResponse(ctx, response)
		for _, m := range afters {
			newCtx, err := m(ctx)
			if err != nil {
				ctx = xcontext.WithError(ctx, err)
				r.writeError(ctx, w, req, err)
				return ctx
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		if err := r.writeResponse(ctx, w, req, response); err != nil {
			ctx = xcontext.WithError(ctx, err)
		}

		return ctx
	}

	cache := r.cache
	r.mux.HandleFunc(method+" "+pattern, func(w http.ResponseWriter, req *http.Request) {
		ctx, ok := before(r.newContext(w, req), w, req)
		if ok {
			if cache != nil && method == http.MethodGet {
				ctx = serveCached(ctx, cache, w, req, serve)
			} else {
				ctx = serve(ctx, w, req)
			}
		}

		for _, c := range closers {
			c(ctx)
		}
	})
}

// exactPattern anchors a pattern ending with a slash, which ServeMux would
// otherwise match against every path below it.
func exactPattern(pattern string) string {
	if strings.HasSuffix(pattern, "/") {
		return pattern + "{$}"
	}

	return pattern
}

func (r *Router) newContext(w http.ResponseWriter, req *http.Request) context.Context {
	ctx := context.Context(requestContext{Context: req.Context(), values: r.ctx})
	ctx = xcontext.WithHTTPRequest(ctx, req)
	ctx = xcontext.WithHTTPWriter(ctx, w)
	ctx = xcontext.WithStartTime(ctx, time.Now())
	return ctx
}

func (r *Router) runClosers(ctx context.Context) {
	for _, c := range r.closers {
		c(ctx)
	}
}
