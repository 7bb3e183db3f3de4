// Package main is the entry point for the portal web server. It serves the
// member portal at / and the admin portal at /admin, both backed by the same
// external REST API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"wfc-portal/internal/backend"
	"wfc-portal/internal/config"
	"wfc-portal/internal/domain"
	"wfc-portal/internal/guard"
	"wfc-portal/internal/listctl"
	"wfc-portal/internal/middleware"
	"wfc-portal/internal/session"
	"wfc-portal/internal/ui"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	client := backend.New(cfg.APIBaseURL, cfg.APITimeout)

	member := &guard.Guard{
		Client:       client,
		Scope:        session.ScopeMember,
		Cookies:      session.MemberCookies,
		Secure:       cfg.IsProduction(),
		LoginPath:    "/login",
		ApprovalPath: "/approval",
		Logger:       logger,
	}
	admin := &guard.Guard{
		Client:       client,
		Scope:        session.ScopeAdmin,
		Cookies:      session.AdminCookies,
		Secure:       cfg.IsProduction(),
		LoginPath:    "/admin/login",
		ApprovalPath: "/admin/login",
		RequireRole:  domain.RoleAdmin,
		Logger:       logger,
	}

	handler := ui.NewHandler(member, admin, listctl.NewController(), cfg.IsProduction(), logger)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	ui.MountRoutes(r, handler)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("portal listening", "addr", cfg.ListenAddr, "api", cfg.APIBaseURL, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
