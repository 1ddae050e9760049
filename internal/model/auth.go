package model

import (
	"context"
	"net/http"
	"time"

	"github.com/yatube-lab/backend/pkg/xcontext"
)

const LoginURL = "/auth/login/"

// Signup
type SignupFormRequest struct{}

type SignupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

type SignupResponse struct {
	Form        SignupForm `json:"form" structs:",omitnested"`
	RedirectURL string     `json:"-" structs:"-"`
}

func (SignupResponse) Template() string { return "users/signup.html" }

func (r SignupResponse) RedirectInfo() (int, string) {
	return redirectIfSet(r.RedirectURL)
}

// Login
type LoginFormRequest struct {
	Next string `json:"next"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Next     string `json:"-" session:"next,delete"`
}

// LoginResponse renders the login form, or redirects with the access token
// after a successful login.
type LoginResponse struct {
	Form LoginForm `json:"form" structs:",omitnested"`
	Next string    `json:"-" structs:"-"`

	AccessToken string `json:"-" structs:"-"`
	RedirectURL string `json:"-" structs:"-"`
}

func (LoginResponse) Template() string { return "users/login.html" }

func (r LoginResponse) RedirectInfo() (int, string) {
	return redirectIfSet(r.RedirectURL)
}

func (r LoginResponse) SessionInfo() map[string]any {
	if r.Next == "" || r.RedirectURL != "" {
		return nil
	}

	return map[string]any{"next": r.Next}
}

func (r LoginResponse) CookieInfo(ctx context.Context) []http.Cookie {
	if r.AccessToken == "" {
		return nil
	}

	cfg := xcontext.Configs(ctx).Auth.AccessToken
	return []http.Cookie{
		{
			Name:     cfg.Name,
			Value:    r.AccessToken,
			Path:     "/",
			Expires:  time.Now().Add(cfg.Expiration),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

// Logout
type LogoutRequest struct{}

type LogoutResponse struct{}

func (LogoutResponse) Template() string { return "users/logged_out.html" }

func (LogoutResponse) CookieInfo(ctx context.Context) []http.Cookie {
	return []http.Cookie{
		{
			Name:     xcontext.Configs(ctx).Auth.AccessToken.Name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		},
	}
}
