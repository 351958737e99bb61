package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/maxapp/site-backend/internal/i18n"
	"github.com/maxapp/site-backend/internal/utils"
)

// SessionVerifier checks the request's session cookie. Implementations may
// rotate the cookie on w as a side effect of a successful check.
type SessionVerifier interface {
	Verify(w http.ResponseWriter, r *http.Request) (utils.Principal, bool)
}

// RouteClass categorizes a request path for the gate decision.
type RouteClass int

const (
	RoutePublic RouteClass = iota
	RouteAdminArea
	RouteAdminLogin
)

// Classify is a pure string match: any path containing the admin segment is
// admin area; ending in the login segment refines it to the login page.
func Classify(path string) RouteClass {
	if !strings.Contains(path, "/admin") {
		return RoutePublic
	}
	if strings.HasSuffix(strings.TrimSuffix(path, "/"), "/admin/login") {
		return RouteAdminLogin
	}
	return RouteAdminArea
}

// gateBypassed paths skip both the auth gate and locale normalization,
// mirroring the matcher exclusions of the page router.
func gateBypassed(path string) bool {
	if strings.HasPrefix(path, "/api/") {
		return true
	}
	for _, prefix := range []string{"/images/", "/videos/"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	switch path {
	case "/favicon.ico", "/robots.txt":
		return true
	}
	return false
}

// Gate is the page middleware: it classifies the route, verifies the session
// for admin routes, applies the redirect decision table, and finishes with
// locale normalization for allowed page requests.
//
//	Public            any      -> allow
//	AdminArea         invalid  -> redirect /{locale}/admin/login
//	AdminArea         valid    -> allow
//	AdminLogin        valid    -> redirect /{locale}/admin/dashboard
//	AdminLogin        invalid  -> allow (login form)
func Gate(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if gateBypassed(path) {
				next.ServeHTTP(w, r)
				return
			}

			if class := Classify(path); class != RoutePublic {
				// Verify may set a rotated session cookie on w before any
				// redirect below, so refreshes survive 302 responses.
				principal, ok := verifier.Verify(w, r)
				locale := redirectLocale(r)

				if class == RouteAdminLogin && ok {
					http.Redirect(w, r, "/"+locale+"/admin/dashboard", http.StatusFound)
					return
				}
				if class == RouteAdminArea && !ok {
					http.Redirect(w, r, "/"+locale+"/admin/login", http.StatusFound)
					return
				}
				if ok {
					ctx := context.WithValue(r.Context(), utils.ContextPrincipalKey, principal)
					r = r.WithContext(ctx)
				}
			}

			// Locale normalization for allowed page requests.
			if seg, _, hasSeg := i18n.SplitPath(path); hasSeg {
				if locale, valid := i18n.Parse(seg); valid {
					ctx := context.WithValue(r.Context(), utils.ContextLocaleKey, locale)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				if i18n.LooksLikeLocale(seg) {
					http.NotFound(w, r)
					return
				}
			}

			locale := i18n.Resolve(r)
			target := "/" + locale
			if path != "/" {
				target += path
			}
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusFound)
		})
	}
}

// redirectLocale picks the locale segment for gate redirect targets: the
// original path's first segment when it is a supported locale, otherwise
// the resolved preference/default.
func redirectLocale(r *http.Request) string {
	if seg, _, ok := i18n.SplitPath(r.URL.Path); ok {
		if locale, valid := i18n.Parse(seg); valid {
			return locale
		}
	}
	return i18n.Resolve(r)
}

// RequireSession protects JSON API routes. Unlike Gate it never redirects;
// a missing or invalid session is a 401.
func RequireSession(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := verifier.Verify(w, r)
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), utils.ContextPrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

var allowed = map[string]struct{}{
	"http://localhost:3000": {},
	"http://localhost:5173": {},
	"https://maxapp.ch":     {},
	"https://www.maxapp.ch": {},
	"https://dev.maxapp.ch": {},
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Echo the origin back only if it's on our allow-list
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin") // important for caches
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods",
				"GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers",
				"Content-Type, Authorization")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
