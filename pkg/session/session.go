package session

import (
	"context"

	"github.com/gorilla/sessions"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

// Get returns the session of the current request. A new session is returned
// if the request has no session cookie.
func Get(ctx context.Context) (*sessions.Session, error) {
	return xcontext.SessionStore(ctx).Get(
		xcontext.HTTPRequest(ctx), xcontext.Configs(ctx).Session.Name)
}

func Save(ctx context.Context, s *sessions.Session) error {
	return s.Save(xcontext.HTTPRequest(ctx), xcontext.HTTPWriter(ctx))
}
