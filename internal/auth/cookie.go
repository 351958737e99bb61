package auth

import (
	"net/http"
	"time"
)

const SessionCookieName = "session_id"

// SessionTTL is how long a session lives. A session past half its lifetime
// is rotated on the next verified request.
const SessionTTL = 12 * time.Hour

// CookieConfig enumerates every cookie attribute explicitly so no option
// rides in on an untyped map.
type CookieConfig struct {
	Path     string
	Domain   string
	MaxAge   int
	HttpOnly bool
	Secure   bool
	SameSite http.SameSite
}

// NewCookieConfig returns the session cookie settings for the environment.
// Secure cookies only in production: httptest and local dev run plain HTTP.
func NewCookieConfig(production bool, domain string) CookieConfig {
	return CookieConfig{
		Path:     "/",
		Domain:   domain,
		MaxAge:   int(SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteLaxMode,
	}
}

// Session builds the session cookie carrying value.
func (c CookieConfig) Session(value string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     c.Path,
		Domain:   c.Domain,
		MaxAge:   c.MaxAge,
		HttpOnly: c.HttpOnly,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	}
}

// Expired builds the cookie that clears the session on logout.
func (c CookieConfig) Expired() *http.Cookie {
	cookie := c.Session("")
	cookie.MaxAge = -1
	return cookie
}
