package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrflow/internal/domain/activity"
	"hrflow/internal/domain/auth"
	"hrflow/internal/domain/dashboard"
	"hrflow/internal/domain/onboarding"
	"hrflow/internal/domain/performance"
	"hrflow/internal/domain/recruiting"
	"hrflow/internal/platform/ai"
	"hrflow/internal/platform/config"
	"hrflow/internal/platform/db"
	"hrflow/internal/platform/jobs"
	"hrflow/internal/platform/metrics"
	activityhandler "hrflow/internal/transport/http/handlers/activity"
	aihandler "hrflow/internal/transport/http/handlers/ai"
	authhandler "hrflow/internal/transport/http/handlers/auth"
	dashboardhandler "hrflow/internal/transport/http/handlers/dashboard"
	onboardinghandler "hrflow/internal/transport/http/handlers/onboarding"
	performancehandler "hrflow/internal/transport/http/handlers/performance"
	recruitinghandler "hrflow/internal/transport/http/handlers/recruiting"
	"hrflow/internal/transport/http/api"
	"hrflow/internal/transport/http/middleware"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Router http.Handler
	Jobs   *jobs.Service
}

// Deps is everything the router needs. Services may be backed by any store
// implementation.
type Deps struct {
	Config      config.Config
	Auth        *auth.Service
	Activity    *activity.Service
	Recruiting  *recruiting.Service
	Onboarding  *onboarding.Service
	Performance *performance.Service
	Dashboard   *dashboard.Service
	AI          *ai.Service
	Metrics     *metrics.Collector
	Ping        func(ctx context.Context) error
}

// New connects to the database, applies migrations and seed data when the
// config asks for them, and starts the maintenance worker. The worker stops
// when ctx is cancelled.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg, auth.HashPassword); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	aiSvc, err := ai.New(ctx, cfg)
	if err != nil {
		pool.Close()
		return nil, err
	}

	authSvc := auth.NewService(auth.NewStore(pool), cfg.SessionSecret, cfg.SessionTTL)
	onboardingSvc := onboarding.NewService(onboarding.NewStore(pool))
	deps := Deps{
		Config:      cfg,
		Auth:        authSvc,
		Activity:    activity.New(activity.NewStore(pool)),
		Recruiting:  recruiting.NewService(recruiting.NewStore(pool), aiSvc),
		Onboarding:  onboardingSvc,
		Performance: performance.NewService(performance.NewStore(pool)),
		Dashboard:   dashboard.NewService(dashboard.NewStore(pool)),
		AI:          aiSvc,
		Metrics:     metrics.New(),
		Ping:        pool.Ping,
	}

	jobsSvc := jobs.New(jobs.NewPoolRuns(pool), onboardingSvc, authSvc, cfg.MaintenanceInterval)
	jobsSvc.Start(ctx)
	jobsSvc.EnqueueMaintenance()

	return &App{
		Config: cfg,
		DB:     pool,
		Router: NewRouter(deps),
		Jobs:   jobsSvc,
	}, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(d.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes, cfg.MaxUploadBytes))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusNotFound, "not_found", "Not found", middleware.GetRequestID(r.Context()))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", middleware.GetRequestID(r.Context()))
	})

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.Ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := d.Ping(ctx); err != nil {
				slog.Warn("readiness check failed", "err", err)
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled && d.Metrics != nil {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, d.Metrics.Snapshot())
		})
	}

	authHandler := authhandler.NewHandler(d.Auth, d.Activity, cfg.SessionCookieName, cfg.CookieSecure, cfg.AllowSelfSignup)
	recruitingHandler := recruitinghandler.NewHandler(d.Recruiting, d.AI, d.Activity, d.Metrics)
	onboardingHandler := onboardinghandler.NewHandler(d.Onboarding, d.Activity)
	performanceHandler := performancehandler.NewHandler(d.Performance, d.Activity)
	activityHandler := activityhandler.NewHandler(d.Activity)
	dashboardHandler := dashboardhandler.NewHandler(d.Dashboard)
	aiHandler := aihandler.NewHandler(d.AI, d.Metrics)

	rateLimit := cfg.RateLimitPerMinute
	if rateLimit <= 0 {
		rateLimit = 60
	}
	sensitive := middleware.SensitiveMutationRateLimit(rateLimit, time.Minute)

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(rateLimit*10, time.Minute))

		r.Group(func(public chi.Router) {
			public.Use(sensitive)
			authHandler.RegisterPublicRoutes(public)
		})

		r.Group(func(protected chi.Router) {
			protected.Use(middleware.Session(cfg.SessionCookieName, d.Auth))
			protected.Use(sensitive)
			authHandler.RegisterRoutes(protected)
			recruitingHandler.RegisterRoutes(protected)
			onboardingHandler.RegisterRoutes(protected)
			performanceHandler.RegisterRoutes(protected)
			activityHandler.RegisterRoutes(protected)
			dashboardHandler.RegisterRoutes(protected)
			aiHandler.RegisterRoutes(protected)
		})
	})

	return router
}

// ConfigureLogging installs the default slog logger.
func ConfigureLogging(cfg config.Config) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "text") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, cfg config.Config) error {
	ConfigureLogging(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("hrflow server listening", "addr", cfg.Addr, "env", cfg.Environment, "ai", app.Config.AIEnabled)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
