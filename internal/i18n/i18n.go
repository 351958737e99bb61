package i18n

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	// Default is the locale used when nothing else matches.
	Default = "en"

	// LocaleCookieName stores the visitor's locale preference.
	LocaleCookieName = "site_locale"
)

// Supported lists the locales the site is translated into. Order matters:
// the first entry is the Accept-Language matcher's fallback.
var Supported = []string{"en", "de"}

var supportedTags = []language.Tag{language.English, language.German}

var matcher = language.NewMatcher(supportedTags)

// localeShape matches path segments that look like a locale code, whether
// supported or not ("en", "fr", "pt-BR").
var localeShape = regexp.MustCompile(`^[a-z]{2}(-[A-Za-z]{2})?$`)

// Parse returns the canonical supported locale for s, if any.
func Parse(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, locale := range Supported {
		if s == locale {
			return locale, true
		}
	}
	return "", false
}

// LooksLikeLocale reports whether seg has the shape of a locale code.
// Segments that look like a locale but are not supported are a 404, not a
// page name to prefix.
func LooksLikeLocale(seg string) bool {
	return localeShape.MatchString(seg)
}

// SplitPath returns the first segment of path and the remainder.
// "/en/about" -> ("en", "/about", true); "/" -> ("", "", false).
func SplitPath(path string) (seg, rest string, ok bool) {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return "", "", false
	}
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i], trimmed[i:], true
	}
	return trimmed, "", true
}

// Resolve determines the best locale for the request: a valid locale prefix
// wins, then the preference cookie, then Accept-Language, then Default.
func Resolve(r *http.Request) string {
	if seg, _, ok := SplitPath(r.URL.Path); ok {
		if locale, valid := Parse(seg); valid {
			return locale
		}
	}

	if cookie, err := r.Cookie(LocaleCookieName); err == nil {
		if locale, valid := Parse(cookie.Value); valid {
			return locale
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			_, index, conf := matcher.Match(tags...)
			if conf > language.No {
				return Supported[index]
			}
		}
	}

	return Default
}

// SetLocaleCookie persists the visitor's locale preference on the response.
func SetLocaleCookie(w http.ResponseWriter, locale string) {
	http.SetCookie(w, &http.Cookie{
		Name:     LocaleCookieName,
		Value:    locale,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
