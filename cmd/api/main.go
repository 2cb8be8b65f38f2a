// Package main is the entrypoint for the Gistrelay API server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/gistrelay/gistrelay/internal/alerts"
	"github.com/gistrelay/gistrelay/internal/config"
	"github.com/gistrelay/gistrelay/internal/github"
	"github.com/gistrelay/gistrelay/internal/handler"
	"github.com/gistrelay/gistrelay/internal/metrics"
	"github.com/gistrelay/gistrelay/internal/middleware"
	"github.com/gistrelay/gistrelay/internal/server"
	"github.com/gistrelay/gistrelay/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize GitHub client
	httpClient := github.NewHTTPClient(cfg.GitHubTimeout)
	githubClient := github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken, httpClient)
	logger.Info("github client ready",
		"api_url", cfg.GitHubAPIURL,
		"authenticated", cfg.HasToken(),
	)

	// Initialize services
	metricsRecorder := metrics.NewNoop()
	gistService := service.NewGistService(githubClient, metricsRecorder)

	enricher := alerts.NewEnricher(alerts.EnricherConfig{
		Environment:     cfg.HostEnvironment,
		AppID:           cfg.ITSMAppID,
		ContractID:      cfg.ITSMContractID,
		EventIDOverride: cfg.ITSMEventID,
		ClusterName:     cfg.ClusterName,
	})
	var forwarder *alerts.Forwarder
	var alertmanagerClient *http.Client
	if cfg.ForwardingEnabled() {
		alertmanagerClient = alerts.NewHTTPClient(cfg.AlertmanagerTimeout)
		forwarder = alerts.NewForwarder(cfg.AlertmanagerURL, alertmanagerClient)
		logger.Info("alert forwarding enabled", "url", cfg.AlertmanagerURL)
	}
	alertService := alerts.NewService(enricher, forwarder, metricsRecorder)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(githubClient)
	gistHandler := handler.NewGistHandler(gistService, logger)
	alertHandler := handler.NewAlertHandler(alertService, logger)

	// Setup router
	r := setupRouter(h, healthHandler, gistHandler, alertHandler, cfg, logger)

	// Create and run server
	srv := server.New(r, cfg.Addr(), server.Timeouts{
		Read:     cfg.ReadTimeout,
		Write:    cfg.WriteTimeout,
		Shutdown: cfg.ShutdownTimeout,
	}, logger)
	srv.OnShutdown("github client", func(ctx context.Context) error {
		httpClient.CloseIdleConnections()
		return nil
	})
	if alertmanagerClient != nil {
		srv.OnShutdown("alertmanager client", func(ctx context.Context) error {
			alertmanagerClient.CloseIdleConnections()
			return nil
		})
	}

	logger.Info("starting server",
		"addr", cfg.Addr(),
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	gistHandler *handler.GistHandler,
	alertHandler *handler.AlertHandler,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = origins
		r.Use(middleware.CORS(corsCfg))
	}

	// Health endpoints
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	// Alert enrichment endpoint
	r.Post("/alert", alertHandler.Receive)

	// Gist relay endpoint. A bare GET / has no username segment and
	// falls through to the NotFound handler without touching upstream.
	r.Get("/{username}", gistHandler.Get)

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
