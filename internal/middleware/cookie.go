package middleware

import (
	"context"
	"net/http"

	"github.com/yatube-lab/backend/pkg/router"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

func HandleSetCookies() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		cookieResp, ok := xcontext.Response(ctx).(router.CookieResponse)
		if ok {
			for _, cookie := range cookieResp.CookieInfo(ctx) {
				cookie := cookie
				http.SetCookie(xcontext.HTTPWriter(ctx), &cookie)
			}
		}

		return nil, nil
	}
}
