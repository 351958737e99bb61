package web

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/maxapp/site-backend/internal/i18n"
	"github.com/maxapp/site-backend/internal/utils"
)

type pageData struct {
	Locale     string
	Title      string
	SiteTitle  string
	Body       string
	NavHome    string
	NavPrivacy string
	NavCookies string
	NavTerms   string
}

// locale returns the request's locale: context first (set by the gate),
// then the URL segment, then the resolver.
func (s *Server) locale(r *http.Request) string {
	if locale, ok := utils.GetLocaleFromContext(r.Context()); ok {
		return locale
	}
	if locale, ok := i18n.Parse(chi.URLParam(r, "locale")); ok {
		return locale
	}
	return i18n.Resolve(r)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, titleKey, bodyKey string) {
	locale := s.locale(r)
	i18n.SetLocaleCookie(w, locale)

	data := pageData{
		Locale:     locale,
		Title:      s.Catalog.Lookup(locale, titleKey),
		SiteTitle:  s.Catalog.Lookup(locale, "site.title"),
		Body:       s.Catalog.Lookup(locale, bodyKey),
		NavHome:    s.Catalog.Lookup(locale, "nav.home"),
		NavPrivacy: s.Catalog.Lookup(locale, "nav.privacy"),
		NavCookies: s.Catalog.Lookup(locale, "nav.cookies"),
		NavTerms:   s.Catalog.Lookup(locale, "nav.terms"),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates["page"].Execute(w, data); err != nil {
		log.Printf("[web] render %s: %v", titleKey, err)
	}
}

func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "site.title", "site.tagline")
}

func (s *Server) PrivacyPolicy(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "pages.privacy.title", "site.tagline")
}

func (s *Server) CookiePolicy(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "pages.cookies.title", "site.tagline")
}

func (s *Server) TermsOfService(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "pages.terms.title", "site.tagline")
}

func (s *Server) AdminLogin(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "admin.login.title", "site.title")
}

func (s *Server) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "admin.dashboard.title", "site.title")
}

func (s *Server) AdminSubmissions(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "admin.submissions.title", "site.title")
}

// RegisterPageRoutes mounts the locale-prefixed page routes. The gate
// middleware guarantees {locale} is a supported locale by the time these
// handlers run.
func (s *Server) RegisterPageRoutes(r chi.Router) {
	r.Get("/{locale}", s.Home)
	r.Get("/{locale}/privacy-policy", s.PrivacyPolicy)
	r.Get("/{locale}/cookie-policy", s.CookiePolicy)
	r.Get("/{locale}/terms-of-service", s.TermsOfService)
	r.Get("/{locale}/admin/login", s.AdminLogin)
	r.Get("/{locale}/admin/dashboard", s.AdminDashboard)
	r.Get("/{locale}/admin/submissions", s.AdminSubmissions)
}
