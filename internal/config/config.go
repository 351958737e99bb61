package config

import (
	"errors"
	"os"
	"strings"
)

// Config holds all environment-driven settings for the site backend.
type Config struct {
	// Port the HTTP server listens on.
	Port string

	// DatabaseURL is the Postgres DSN.
	DatabaseURL string

	// ResendKey is the API key for the transactional email provider.
	ResendKey string

	// EmailFrom is the From address for all outbound mail.
	EmailFrom string

	// AdminEmail receives new-submission notifications.
	AdminEmail string

	// DevEmailRedirect, when set, receives ALL outbound mail instead of the
	// real recipient. Used with unverified sending domains in development.
	DevEmailRedirect string

	// Env is "development" or "production".
	Env string

	// VideosDir is the directory served by /api/video/{name}.
	VideosDir string

	// TranslationsDir holds the per-locale YAML message catalogs.
	TranslationsDir string

	// CookieDomain scopes the session cookie. Empty means host-only.
	CookieDomain string
}

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrMissingEmailFrom   = errors.New("EMAIL_FROM is required when RESEND_API_KEY is set")
)

// LoadFromEnv loads configuration from environment variables.
//
// Environment variables:
//   - PORT: HTTP listen port (default: 5050)
//   - DATABASE_URL: Postgres DSN (required)
//   - RESEND_API_KEY: email provider key (empty disables outbound mail)
//   - EMAIL_FROM: From address for outbound mail
//   - ADMIN_EMAIL: inbox notified about new submissions
//   - DEV_EMAIL_REDIRECT: overrides every mail recipient (development)
//   - APP_ENV: "development" (default) or "production"
//   - VIDEOS_DIR: directory for /api/video (default: ./videos)
//   - TRANSLATIONS_DIR: locale catalog directory (default: ./translations)
//   - COOKIE_DOMAIN: session cookie domain (default: host-only)
func LoadFromEnv() Config {
	env := strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV")))
	if env != "production" {
		env = "development"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	videosDir := os.Getenv("VIDEOS_DIR")
	if videosDir == "" {
		videosDir = "videos"
	}

	translationsDir := os.Getenv("TRANSLATIONS_DIR")
	if translationsDir == "" {
		translationsDir = "translations"
	}

	return Config{
		Port:             port,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		ResendKey:        os.Getenv("RESEND_API_KEY"),
		EmailFrom:        os.Getenv("EMAIL_FROM"),
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		DevEmailRedirect: os.Getenv("DEV_EMAIL_REDIRECT"),
		Env:              env,
		VideosDir:        videosDir,
		TranslationsDir:  translationsDir,
		CookieDomain:     os.Getenv("COOKIE_DOMAIN"),
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	if c.ResendKey != "" && c.EmailFrom == "" {
		return ErrMissingEmailFrom
	}
	return nil
}

// IsProduction reports whether the app runs with production settings
// (secure cookies, real mail recipients).
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
