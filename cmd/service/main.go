// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jsamuelsen/quotewall/internal/adapters/clients"
	"github.com/jsamuelsen/quotewall/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotewall/internal/adapters/http"
	"github.com/jsamuelsen/quotewall/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotewall/internal/adapters/storage"
	"github.com/jsamuelsen/quotewall/internal/app"
	"github.com/jsamuelsen/quotewall/internal/platform/config"
	"github.com/jsamuelsen/quotewall/internal/platform/logging"
	"github.com/jsamuelsen/quotewall/internal/platform/session"
	"github.com/jsamuelsen/quotewall/internal/platform/share"
	"github.com/jsamuelsen/quotewall/internal/platform/telemetry"
	"github.com/jsamuelsen/quotewall/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Load .env for local development; absence is not an error
	_ = godotenv.Load()

	// 2. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 3. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 4. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	slog.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 5. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 6. Open the database and run migrations
	db, err := storage.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	if err := storage.Migrate(db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	// 7. Create health registry with the database check
	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(storage.NewHealthChecker(db)); err != nil {
		return fmt.Errorf("registering database health check: %w", err)
	}

	// 8. Session manager for signed login cookies
	sessions := session.NewManager(session.Config{
		Secret:     cfg.Session.Secret,
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.Secure,
	})

	// 9. HTTP client for the explanation provider.
	// Completions are slow and not idempotent, so a failed call is not
	// retried; the caller simply tries again.
	aiRetry := cfg.Client.Retry
	aiRetry.MaxAttempts = 1

	apiKey := cfg.AI.APIKey

	aiClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.AI.BaseURL,
		ServiceName: "ai-provider",
		Timeout:     cfg.AI.Timeout,
		Retry:       aiRetry,
		Circuit:     cfg.Client.CircuitBreaker,
		AuthFunc: func(req *nethttp.Request) {
			if apiKey != "" {
				req.Header.Set("Authorization", "Bearer "+apiKey)
			}
		},
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("creating AI client: %w", err)
	}

	explainProvider := acl.NewExplainClient(acl.ExplainClientConfig{
		Client:        aiClient,
		APIKey:        cfg.AI.APIKey,
		Model:         cfg.AI.Model,
		DefaultPrompt: cfg.AI.Prompt,
		Logger:        logger,
	})

	// 10. Application services
	authService := app.NewAuthService(app.AuthServiceConfig{
		Users:  storage.NewUserRepo(db),
		Logger: logger,
	})

	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Quotes:          storage.NewQuoteRepo(db),
		Reactions:       storage.NewReactionRepo(db),
		Share:           share.NewBuilder(cfg.Share.BaseURL),
		DefaultPageSize: cfg.Search.PageSize,
		MaxPageSize:     cfg.Search.MaxPageSize,
		Logger:          logger,
	})

	explainService := app.NewExplainService(app.ExplainServiceConfig{
		Provider: explainProvider,
		Logger:   logger,
	})

	// 11. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	authHandler := handlers.NewAuthHandler(authService, sessions)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	explainHandler := handlers.NewExplainHandler(explainService)

	// 12. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 13. Setup router with all middleware and routes
	routerCfg := http.RouterConfig{
		Logger:         logger,
		AppConfig:      &cfg.App,
		Sessions:       sessions,
		HealthHandler:  healthHandler,
		AuthHandler:    authHandler,
		QuoteHandler:   quoteHandler,
		ExplainHandler: explainHandler,
		Timeout:        http.DefaultRequestTimeout,
	}
	http.SetupRouter(server.Engine(), routerCfg)

	// 14. Start server (non-blocking)
	serverErr := server.Start()

	// 15. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	// Listen for OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		// Server error during startup or runtime
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	// Graceful shutdown sequence
	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
