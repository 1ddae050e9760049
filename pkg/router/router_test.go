package router_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/pagecache"
	"github.com/yatube-lab/backend/pkg/router"
	"github.com/yatube-lab/backend/pkg/testutil"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

type fakeRenderer struct{}

func (fakeRenderer) Render(ctx context.Context, w io.Writer, name string, data any) error {
	_, err := fmt.Fprintf(w, "%s|%v", name, data)
	return err
}

type itemRequest struct {
	ID   int64  `json:"id"`
	Page string `json:"page"`
	Text string `json:"text"`
}

type itemResponse struct {
	ID   int64
	Page string
	Text string
}

func (itemResponse) Template() string { return "item.html" }

type redirect struct{ url string }

func (r redirect) RedirectInfo() (int, string) {
	if r.url == "" {
		return 0, ""
	}
	return http.StatusFound, r.url
}

func (redirect) Template() string { return "redirect.html" }

func newRouter() *router.Router {
	r := router.New(testutil.MockContext(), fakeRenderer{})
	r.SetLoginURL("/auth/login/")
	r.SetErrorTemplate(func(status int) string { return fmt.Sprintf("error_%d.html", status) })
	return r
}

func itemHandler(ctx context.Context, req *itemRequest) (*itemResponse, error) {
	if req.ID == 404 {
		return nil, errorx.New(errorx.NotFound, "no item")
	}

	return &itemResponse{ID: req.ID, Page: req.Page, Text: req.Text}, nil
}

func TestRouter_BindsPathAndQuery(t *testing.T) {
	r := newRouter()
	router.GET(r, "/items/{id}/", itemHandler)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/7/?page=2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.True(t, strings.HasPrefix(rec.Body.String(), "item.html|"))
	require.Contains(t, rec.Body.String(), "7 2")
}

func TestRouter_MatchesExactPath(t *testing.T) {
	r := newRouter()
	router.GET(r, "/items/{id}/", itemHandler)
	router.GET(r, "/{$}", itemHandler)

	for _, path := range []string{"/items/5/junk/", "/items/5/a/b/c", "/unknown/"} {
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusNotFound, rec.Code, path)
		require.True(t, strings.HasPrefix(rec.Body.String(), "error_404.html|"), path)
	}

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/5/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/5", nil))
	require.Equal(t, http.StatusMovedPermanently, rec.Code)
	require.Equal(t, "/items/5/", rec.Header().Get("Location"))
}

func TestRouter_InvalidPathValueIsNotFound(t *testing.T) {
	r := newRouter()
	router.GET(r, "/items/{id}/", itemHandler)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/abc/", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.True(t, strings.HasPrefix(rec.Body.String(), "error_404.html|"))
}

func TestRouter_BindsPostForm(t *testing.T) {
	r := newRouter()
	router.POST(r, "/items/{id}/", itemHandler)

	form := url.Values{"text": {"hello"}, "id": {"99"}}
	req := httptest.NewRequest(http.MethodPost, "/items/3/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "3  hello")
}

func TestRouter_Errors(t *testing.T) {
	r := newRouter()
	router.GET(r, "/items/{id}/", itemHandler)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/404/", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unknown/", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.True(t, strings.HasPrefix(rec.Body.String(), "error_404.html|"))
}

func TestRouter_UnauthenticatedRedirectsToLogin(t *testing.T) {
	r := newRouter()
	private := r.Branch()
	private.Before(func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return nil, errorx.New(errorx.Unauthenticated, "login required")
		}
		return nil, nil
	})
	router.GET(private, "/create/", itemHandler)
	router.GET(r, "/items/{id}/", itemHandler)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/create/", nil))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/auth/login/?next=/create/", rec.Header().Get("Location"))

	// Middlewares of a branch do not leak into its parent.
	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/1/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Redirect(t *testing.T) {
	r := newRouter()
	router.GET(r, "/go/", func(ctx context.Context, req *itemRequest) (*redirect, error) {
		return &redirect{url: req.Text}, nil
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/go/?text=/target/", nil))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/target/", rec.Header().Get("Location"))

	// A zero redirect status renders the page.
	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/go/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.HasPrefix(rec.Body.String(), "redirect.html|"))
}

func TestRouter_MiddlewaresAndClosers(t *testing.T) {
	r := newRouter()

	var closed []error
	r.AddCloser(func(ctx context.Context) {
		closed = append(closed, xcontext.Error(ctx))
	})
	r.Before(func(ctx context.Context) (context.Context, error) {
		return xcontext.WithRequestUsername(ctx, "alice"), nil
	})

	var afterResponse any
	r.After(func(ctx context.Context) (context.Context, error) {
		afterResponse = xcontext.Response(ctx)
		return nil, nil
	})

	router.GET(r, "/items/{id}/", func(ctx context.Context, req *itemRequest) (*itemResponse, error) {
		resp, err := itemHandler(ctx, req)
		if resp != nil {
			resp.Text = xcontext.RequestUsername(ctx)
		}
		return resp, err
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/1/", nil))
	require.Contains(t, rec.Body.String(), "alice")
	require.Equal(t, &itemResponse{ID: 1, Text: "alice"}, afterResponse)

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/404/", nil))

	require.Len(t, closed, 2)
	require.NoError(t, closed[0])
	require.True(t, errorx.Is(closed[1], errorx.NotFound))
}

func TestRouter_CachePage(t *testing.T) {
	r := newRouter()
	cached := r.Branch()
	cached.CachePage(pagecache.NewMemoryCache(), time.Minute, func(ctx context.Context) string {
		return "key:" + xcontext.HTTPRequest(ctx).URL.Query().Get("page")
	})

	calls := 0
	router.GET(cached, "/{$}", func(ctx context.Context, req *itemRequest) (*itemResponse, error) {
		calls++
		if req.Page == "bad" {
			return nil, errorx.New(errorx.NotFound, "no page")
		}
		return &itemResponse{Text: fmt.Sprint(calls)}, nil
	})

	get := func(target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec
	}

	first := get("/")
	require.Equal(t, http.StatusOK, first.Code)
	second := get("/")
	require.Equal(t, http.StatusOK, second.Code)
	require.Equal(t, first.Body.String(), second.Body.String())
	require.Equal(t, 1, calls)

	require.Equal(t, http.StatusOK, get("/?page=2").Code)
	require.Equal(t, 2, calls)

	// Failed pages are not cached.
	require.Equal(t, http.StatusNotFound, get("/?page=bad").Code)
	require.Equal(t, http.StatusNotFound, get("/?page=bad").Code)
	require.Equal(t, 4, calls)
}

func TestRouter_NilResponse(t *testing.T) {
	r := newRouter()
	router.POST(r, "/noop/", func(ctx context.Context, req *itemRequest) (*itemResponse, error) {
		return nil, nil
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/noop/", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
}
