package model

import "net/http"

// RedirectResponse redirects the client with 302 Found.
type RedirectResponse struct {
	URL string `json:"-"`
}

func (r RedirectResponse) RedirectInfo() (int, string) {
	return http.StatusFound, r.URL
}

func Redirect(url string) *RedirectResponse {
	return &RedirectResponse{URL: url}
}

// redirectIfSet returns a zero status if url is empty, so the page is
// rendered instead.
func redirectIfSet(url string) (int, string) {
	if url == "" {
		return 0, ""
	}

	return http.StatusFound, url
}

// ErrorTemplate returns the template of an error page.
func ErrorTemplate(status int) string {
	switch status {
	case http.StatusNotFound:
		return "core/404.html"
	case http.StatusForbidden:
		return "core/403.html"
	default:
		return "core/error.html"
	}
}
