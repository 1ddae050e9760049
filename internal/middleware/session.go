package middleware

import (
	"context"

	"github.com/yatube-lab/backend/pkg/router"
	"github.com/yatube-lab/backend/pkg/session"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

func HandleSaveSession() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		sessionResp, ok := xcontext.Response(ctx).(router.SessionResponse)
		if !ok {
			return nil, nil
		}

		sessionInfo := sessionResp.SessionInfo()
		if len(sessionInfo) == 0 {
			return nil, nil
		}

		s, err := session.Get(ctx)
		if err != nil {
			return nil, err
		}

		for k, v := range sessionInfo {
			s.Values[k] = v
		}

		if err := session.Save(ctx, s); err != nil {
			return nil, err
		}

		return nil, nil
	}
}
