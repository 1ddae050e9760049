package middleware

import (
	"context"
	"errors"

	"github.com/yatube-lab/backend/internal/model"
	"github.com/yatube-lab/backend/internal/repository"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/router"
	"github.com/yatube-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// AuthVerifier identifies the user of a request. Requests without valid
// credentials, or whose user no longer exists, stay anonymous.
type AuthVerifier struct {
	userRepo       repository.UserRepository
	useAccessToken bool
}

func NewAuthVerifier(userRepo repository.UserRepository) *AuthVerifier {
	return &AuthVerifier{userRepo: userRepo}
}

func (a *AuthVerifier) WithAccessToken() *AuthVerifier {
	a.useAccessToken = true
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if !a.useAccessToken {
			return nil, nil
		}

		token, ok := a.verifyAccessToken(ctx)
		if !ok {
			return nil, nil
		}

		user, err := a.userRepo.GetByID(ctx, token.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				xcontext.Logger(ctx).Debugf("Access token of a deleted user %s", token.ID)
				return nil, nil
			}

			xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
			return nil, errorx.Unknown
		}

		ctx = xcontext.WithRequestUserID(ctx, user.ID)
		ctx = xcontext.WithRequestUsername(ctx, user.Username)
		return ctx, nil
	}
}

func (a *AuthVerifier) verifyAccessToken(ctx context.Context) (*model.AccessToken, bool) {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return nil, false
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	var token model.AccessToken
	if err := xcontext.TokenEngine(ctx).Verify(cookie.Value, &token); err != nil {
		xcontext.Logger(ctx).Debugf("Invalid access token: %v", err)
		return nil, false
	}

	if token.ID == "" {
		return nil, false
	}

	return &token, true
}

// RequireLogin rejects anonymous requests. The router redirects them to the
// login page.
func RequireLogin() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to log in first")
		}

		return nil, nil
	}
}
