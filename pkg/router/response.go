package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

const htmlContentType = "text/html; charset=utf-8"

// PageResponse is rendered with the template it names.
type PageResponse interface {
	Template() string
}

// RedirectResponse redirects the client if the returned status is not zero.
type RedirectResponse interface {
	RedirectInfo() (int, string)
}

// SessionResponse stores values in the session of the client.
type SessionResponse interface {
	SessionInfo() map[string]any
}

// CookieResponse sets cookies on the client.
type CookieResponse interface {
	CookieInfo(ctx context.Context) []http.Cookie
}

func (r *Router) writeResponse(ctx context.Context, w http.ResponseWriter, req *http.Request, resp any) error {
	if redirect, ok := resp.(RedirectResponse); ok {
		if code, location := redirect.RedirectInfo(); code != 0 {
			http.Redirect(w, req, location, code)
			return nil
		}
	}

	if page, ok := resp.(PageResponse); ok && r.renderer != nil {
		buf := new(bytes.Buffer)
		if err := r.renderer.Render(ctx, buf, page.Template(), resp); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot render %s: %v", page.Template(), err)
			r.writeError(ctx, w, req, errorx.Unknown)
			return err
		}

		w.Header().Set("Content-Type", htmlContentType)
		w.WriteHeader(http.StatusOK)
		_, err := w.Write(buf.Bytes())
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(resp)
}

func (r *Router) writeError(ctx context.Context, w http.ResponseWriter, req *http.Request, err error) {
	var errx errorx.Error
	if !errors.As(err, &errx) {
		errx = errorx.Unknown
	}

	if errx.Code == errorx.Unauthenticated {
		http.Redirect(w, req, r.loginRedirect(req), http.StatusFound)
		return
	}

	status := statusOf(errx.Code)
	if r.renderer == nil || r.options.errorTemplate == nil {
		http.Error(w, errx.Message, status)
		return
	}

	data := map[string]any{
		"Status":  status,
		"Message": errx.Message,
		"Path":    req.URL.Path,
	}

	buf := new(bytes.Buffer)
	if err := r.renderer.Render(ctx, buf, r.options.errorTemplate(status), data); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot render error page: %v", err)
		http.Error(w, errx.Message, status)
		return
	}

	w.Header().Set("Content-Type", htmlContentType)
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// loginRedirect returns the login page which sends the user back to req
// afterwards.
func (r *Router) loginRedirect(req *http.Request) string {
	next := strings.ReplaceAll(url.QueryEscape(req.URL.RequestURI()), "%2F", "/")
	return r.options.loginURL + "?next=" + next
}

func statusOf(code errorx.Code) int {
	switch code {
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.PermissionDenied:
		return http.StatusForbidden
	case errorx.Unauthenticated:
		return http.StatusUnauthorized
	case errorx.BadRequest, errorx.InvalidForm:
		return http.StatusBadRequest
	case errorx.AlreadyExists:
		return http.StatusConflict
	case errorx.Unavailable:
		return http.StatusServiceUnavailable
	case errorx.NotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
