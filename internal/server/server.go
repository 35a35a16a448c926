// Package server is the composition root: it builds every process-wide
// singleton (database pool, token services, object store client), wires the
// HTTP routes, and owns startup and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	svix "github.com/svix/svix-webhooks/go"

	"github.com/hirehive/hirehive/internal/auth"
	"github.com/hirehive/hirehive/internal/config"
	"github.com/hirehive/hirehive/internal/handler"
	"github.com/hirehive/hirehive/internal/middleware"
	"github.com/hirehive/hirehive/internal/repository/sqlite"
	"github.com/hirehive/hirehive/internal/service"
	"github.com/hirehive/hirehive/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// Server owns the HTTP listener and the resources that must be released on
// shutdown.
type Server struct {
	httpServer *http.Server
	db         *sqlite.DB
	logger     *slog.Logger
}

// New builds a fully wired Server from configuration. Everything created
// here lives for the whole process: one database pool, one token service,
// one object store client, shared by all requests.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		db.Close()
		return nil, err
	}
	identity, err := auth.NewIdentityVerifier(cfg.ClerkSecret)
	if err != nil {
		db.Close()
		return nil, err
	}
	passwords := auth.NewPasswordService()

	var uploader storage.Uploader
	if cfg.CloudinaryURL == "" {
		logger.Warn("CLOUDINARY_URL not set, file uploads are disabled")
		uploader = storage.Disabled{}
	} else {
		uploader, err = storage.NewCloudinary(cfg.CloudinaryURL)
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	companySvc := service.NewCompanyService(db, passwords, tokens, uploader)
	jobSvc := service.NewJobService(db)
	appSvc := service.NewApplicationService(db, db)
	userSvc := service.NewUserService(db, uploader)
	syncSvc := service.NewSyncService(db, logger)

	companyH := handler.NewCompanyHandler(companySvc, jobSvc, appSvc, logger)
	jobH := handler.NewJobHandler(jobSvc, logger)
	userH := handler.NewUserHandler(userSvc, appSvc, logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.ClientOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", auth.CompanyTokenHeader},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("API Working"))
	})

	// The webhook endpoint only exists when a signing secret is configured;
	// mounting it unverified would let anyone forge user lifecycle events.
	if cfg.WebhookSecret == "" {
		logger.Warn("CLERK_WEBHOOK_SECRET not set, webhook endpoint is disabled")
	} else {
		wh, err := svix.NewWebhook(cfg.WebhookSecret)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("server: creating webhook verifier: %w", err)
		}
		webhookH := handler.NewWebhookHandler(wh, syncSvc, logger)
		r.Post("/webhooks", webhookH.Handle)
	}

	r.Route("/api/jobs", func(r chi.Router) {
		r.Get("/", jobH.List)
		r.Get("/{id}", jobH.Get)
	})

	r.Route("/api/company", func(r chi.Router) {
		r.Post("/register", companyH.Register)
		r.Post("/login", companyH.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireCompany(tokens))
			r.Get("/company", companyH.Profile)
			r.Post("/post-job", companyH.PostJob)
			r.Get("/list-jobs", companyH.ListJobs)
			r.Post("/change-visibility", companyH.ChangeVisibility)
			r.Get("/applicants", companyH.Applicants)
			r.Post("/change-status", companyH.ChangeStatus)
		})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(auth.RequireUser(identity))
		r.Get("/user", userH.Profile)
		r.Post("/apply", userH.Apply)
		r.Get("/applications", userH.Applications)
		r.Post("/update-resume", userH.UpdateResume)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		db:     db,
		logger: logger,
	}, nil
}

// Start runs the listener until SIGINT/SIGTERM, then drains in-flight
// requests and closes the database.
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()
	s.logger.Info("server listening", "addr", s.httpServer.Addr)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		s.db.Close()
		return fmt.Errorf("server: listening: %w", err)
	case sig := <-stop:
		s.logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.db.Close()
		return fmt.Errorf("server: shutting down: %w", err)
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("server: closing database: %w", err)
	}

	s.logger.Info("shutdown complete")
	return nil
}
