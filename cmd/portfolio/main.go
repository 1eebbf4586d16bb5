// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"portfolio-go/internal/analytics"
	"portfolio-go/internal/config"
	"portfolio-go/internal/geoip"
	"portfolio-go/internal/handler"
	"portfolio-go/internal/logging"
	"portfolio-go/internal/middleware"
	"portfolio-go/internal/scheduler"
	"portfolio-go/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "portfolio - personal portfolio backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_JWT_SECRET    Token signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_DB_PATH       SQLite database path (default: ./data/portfolio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_SERVER_PORT   Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_ENV           Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_UPLOADS_DIR   CV upload directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_SETUP_KEY     Key authorizing admin force re-provisioning in production\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_GEOIP_DB_PATH Path to a GeoLite2-Country.mmdb file (optional)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("portfolio %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	var baseHandler slog.Handler
	if cfg.LogFormat == "json" {
		baseHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	} else {
		baseHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	}
	slog.SetDefault(slog.New(baseHandler))

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger so WARN and ERROR records also land in the event log
	logger := slog.New(logging.NewEventLogHandler(baseHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	// GeoIP is optional; a missing database degrades to empty countries.
	geo, err := geoip.NewLookup(cfg.GeoIPDBPath)
	if err != nil {
		slog.Warn("GeoIP unavailable", "error", err)
	}
	defer func() {
		if err := geo.Close(); err != nil {
			slog.Error("closing GeoIP database", "error", err)
		}
	}()

	tracker := analytics.NewTracker(db, geo, cfg.VisitorSalt)

	sched := scheduler.New(db, logger, geo, cfg.AnalyticsRetentionDays)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	secret := []byte(cfg.JWTSecret)
	secureCookies := !cfg.IsDevelopment()

	authHandler := handler.NewAuthHandler(db, secret, cfg.TokenTTL, secureCookies)
	setupHandler := handler.NewSetupHandler(db, cfg.IsDevelopment(), cfg.SetupKey)
	profileHandler := handler.NewProfileHandler(db)
	projectsHandler := handler.NewProjectsHandler(db)
	postsHandler := handler.NewPostsHandler(db)
	experiencesHandler := handler.NewExperiencesHandler(db)
	educationHandler := handler.NewEducationHandler(db)
	skillsHandler := handler.NewSkillsHandler(db)
	testimonialsHandler := handler.NewTestimonialsHandler(db)
	technologiesHandler := handler.NewTechnologiesHandler(db)
	blogTaxonomyHandler := handler.NewBlogTaxonomyHandler(db)
	messagesHandler := handler.NewMessagesHandler(db)
	cvHandler := handler.NewCVHandler(db, cfg.UploadsDir, cfg.MaxCVSize, tracker)
	analyticsHandler := handler.NewAnalyticsHandler(db, tracker)
	healthHandler := handler.NewHealthHandler(db)

	contactLimiter := middleware.NewIPRateLimiter(middleware.ContactFormLimiterConfig())
	defer contactLimiter.Close()
	loginLimiter := middleware.NewIPRateLimiter(middleware.LoginLimiterConfig())
	defer loginLimiter.Close()

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))

	r.Get("/healthz", healthHandler.Health)

	// Public content API
	r.Route("/api", func(r chi.Router) {
		r.Get("/profile", profileHandler.Get)
		r.Get("/projects", projectsHandler.List)
		r.Get("/projects/{slug}", projectsHandler.Get)
		r.Get("/posts", postsHandler.ListPublished)
		r.Get("/posts/{slug}", postsHandler.GetPublished)
		r.Get("/blog/categories", blogTaxonomyHandler.ListCategories)
		r.Get("/blog/tags", blogTaxonomyHandler.ListTags)
		r.Get("/experiences", experiencesHandler.List)
		r.Get("/education", educationHandler.List)
		r.Get("/skills", skillsHandler.List)
		r.Get("/testimonials", testimonialsHandler.ListApproved)
		r.Get("/technologies", technologiesHandler.List)
		r.Get("/cv", cvHandler.Download)
		r.Post("/analytics/track", analyticsHandler.Track)
		r.Post("/analytics/download", analyticsHandler.TrackDownload)

		r.With(contactLimiter.Middleware).Post("/contact", messagesHandler.Submit)
	})

	// Admin area: the guard decides allow/redirect for everything below
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Guard(secret, secureCookies))

		r.Get("/setup", setupHandler.Status)
		r.Post("/setup", setupHandler.Create)
		r.With(loginLimiter.Middleware).Post("/login", authHandler.Login)

		// Everything past this point holds verified claims.
		r.Group(func(r chi.Router) {
			r.Use(middleware.LoadUser(db, secureCookies))
			r.Use(middleware.RequireAdmin())

			r.Post("/logout", authHandler.Logout)

			r.Route("/api", func(r chi.Router) {
				r.Get("/me", authHandler.Me)
				r.Put("/profile", profileHandler.Update)
				r.Put("/password", profileHandler.ChangePassword)

				r.Post("/projects", projectsHandler.Create)
				r.Put("/projects/{id}", projectsHandler.Update)
				r.Delete("/projects/{id}", projectsHandler.Delete)

				r.Get("/posts", postsHandler.ListAll)
				r.Post("/posts", postsHandler.Create)
				r.Put("/posts/{id}", postsHandler.Update)
				r.Delete("/posts/{id}", postsHandler.Delete)

				r.Post("/blog/categories", blogTaxonomyHandler.CreateCategory)
				r.Put("/blog/categories/{id}", blogTaxonomyHandler.UpdateCategory)
				r.Delete("/blog/categories/{id}", blogTaxonomyHandler.DeleteCategory)
				r.Post("/blog/tags", blogTaxonomyHandler.CreateTag)
				r.Put("/blog/tags/{id}", blogTaxonomyHandler.UpdateTag)
				r.Delete("/blog/tags/{id}", blogTaxonomyHandler.DeleteTag)

				r.Post("/experiences", experiencesHandler.Create)
				r.Put("/experiences/{id}", experiencesHandler.Update)
				r.Delete("/experiences/{id}", experiencesHandler.Delete)

				r.Post("/education", educationHandler.Create)
				r.Put("/education/{id}", educationHandler.Update)
				r.Delete("/education/{id}", educationHandler.Delete)

				r.Post("/skills", skillsHandler.Create)
				r.Put("/skills/{id}", skillsHandler.Update)
				r.Delete("/skills/{id}", skillsHandler.Delete)

				r.Get("/testimonials", testimonialsHandler.ListAll)
				r.Post("/testimonials", testimonialsHandler.Create)
				r.Put("/testimonials/{id}", testimonialsHandler.Update)
				r.Delete("/testimonials/{id}", testimonialsHandler.Delete)

				r.Post("/technologies", technologiesHandler.Create)
				r.Put("/technologies/{id}", technologiesHandler.Update)
				r.Delete("/technologies/{id}", technologiesHandler.Delete)

				r.Get("/messages", messagesHandler.List)
				r.Get("/messages/{id}", messagesHandler.Get)
				r.Put("/messages/{id}/status", messagesHandler.UpdateStatus)
				r.Delete("/messages/{id}", messagesHandler.Delete)

				r.Post("/cv", cvHandler.Upload)
				r.Delete("/cv", cvHandler.Delete)

				r.Get("/stats", analyticsHandler.Stats)
				r.Get("/events", analyticsHandler.Events)
			})
		})
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for CV uploads on slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", appVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
