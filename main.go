package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/maxapp/site-backend/internal/auth"
	"github.com/maxapp/site-backend/internal/config"
	"github.com/maxapp/site-backend/internal/contact"
	"github.com/maxapp/site-backend/internal/db"
	"github.com/maxapp/site-backend/internal/email"
	"github.com/maxapp/site-backend/internal/i18n"
	"github.com/maxapp/site-backend/internal/middleware"
	"github.com/maxapp/site-backend/internal/web"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	db.Connect(cfg.DatabaseURL)
	auth.Init()
	contact.Init()

	catalog, err := i18n.LoadCatalog(cfg.TranslationsDir)
	if err != nil {
		log.Fatal("Failed to load translations: ", err)
	}

	var sender email.Sender = email.NopSender{}
	if cfg.ResendKey != "" {
		sender = email.NewResendSender(cfg.ResendKey, cfg.DevEmailRedirect)
	}

	cookies := auth.NewCookieConfig(cfg.IsProduction(), cfg.CookieDomain)
	verifier := auth.NewVerifier(auth.GormStore{}, cookies)
	authHandlers := auth.Handlers{Cookies: cookies}
	contactHandler := contact.NewHandler(sender, catalog, cfg.EmailFrom, cfg.AdminEmail)
	server := web.NewServer(catalog, cfg.VideosDir)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.Gate(verifier))

	r.Post("/api/contact", contactHandler.Submit)
	r.Get("/api/video/{name}", server.Video)

	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/login", authHandlers.Login)
		r.Post("/logout", authHandlers.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(verifier))
			r.Get("/me", authHandlers.Me)
			r.Get("/submissions", contactHandler.List)
			r.Patch("/submissions/{id}", contactHandler.UpdateStatus)
			r.Delete("/submissions/{id}", contactHandler.Delete)
			r.Post("/reply", contactHandler.Reply)
		})
	})

	server.RegisterPageRoutes(r)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Server listening on port :%s...", cfg.Port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
