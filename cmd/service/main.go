// Package main is the entry point of the print shop API.
//
//	@title			Printologia Print Shop API
//	@version		1.0
//	@description	Quote engine, blog and customer submissions of the print shop.
//	@BasePath		/
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/printologia/printshop/internal/adapters/clients"
	"github.com/printologia/printshop/internal/adapters/clients/acl"
	"github.com/printologia/printshop/internal/adapters/http"
	"github.com/printologia/printshop/internal/adapters/http/handlers"
	"github.com/printologia/printshop/internal/adapters/persistence/dynamostore"
	"github.com/printologia/printshop/internal/adapters/persistence/gormstore"
	"github.com/printologia/printshop/internal/app"
	"github.com/printologia/printshop/internal/platform/config"
	"github.com/printologia/printshop/internal/platform/logging"
	"github.com/printologia/printshop/internal/platform/telemetry"
	"github.com/printologia/printshop/internal/ports"
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

	// 1. Pick up .env files, then determine the profile
	if err := config.LoadDotEnv(".env", ".env.local"); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
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
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("storage", cfg.Storage.Driver),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		Insecure:     cfg.Telemetry.Insecure,
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

	healthRegistry := ports.NewHealthRegistry()

	// 5. Open storage
	store, err := openStorage(ctx, &cfg.Storage, logger)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := store.close(); closeErr != nil {
			logger.Error("storage close error", slog.Any("error", closeErr))
		}
	}()

	if err := healthRegistry.Register(store.health); err != nil {
		return fmt.Errorf("registering storage health check: %w", err)
	}

	// 6. Create the notifier (Resend when an API key is set)
	notifier, err := newNotifier(&cfg.Notification, logger, healthRegistry)
	if err != nil {
		return err
	}

	// 7. Create application services
	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		PriceTable: cfg.Pricing.PriceTable(),
		Logger:     logger,
	})

	blogService := app.NewBlogService(app.BlogServiceConfig{
		Posts:  store.posts,
		Logger: logger,
	})

	submissionService := app.NewSubmissionService(app.SubmissionServiceConfig{
		Notifier:    notifier,
		Submissions: store.submissions,
		Quotes:      quoteService,
		Recipients:  cfg.Notification.To,
		Logger:      logger,
	})

	// 8. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)

	// 9. Create HTTP server and router
	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:      logger,
		AppConfig:   &cfg.App,
		AuthConfig:  &cfg.Auth,
		Timeout:     cfg.Server.RequestTimeout,
		Swagger:     cfg.Swagger.Enabled,
		Health:      handlers.NewHealthHandler(healthRegistry, buildInfo),
		Quotes:      handlers.NewQuoteHandler(quoteService),
		Blog:        handlers.NewBlogHandler(blogService),
		Submissions: handlers.NewSubmissionHandler(submissionService),
	})

	// 10. Start server (non-blocking)
	serverErr := server.Start()

	// 11. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// storage bundles the repositories of whichever backend is configured.
type storage struct {
	posts       ports.PostRepository
	submissions ports.SubmissionRepository
	health      ports.HealthChecker
	close       func() error
}

func openStorage(ctx context.Context, cfg *config.StorageConfig, logger *slog.Logger) (*storage, error) {
	if cfg.Driver == gormstore.DriverSQLite || cfg.Driver == gormstore.DriverPostgres {
		store, err := gormstore.Open(ctx, gormstore.Config{
			Driver:          cfg.Driver,
			DSN:             cfg.DSN,
			AutoMigrate:     cfg.AutoMigrate,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			Logger:          logger,
		})
		if err != nil {
			return nil, fmt.Errorf("opening storage: %w", err)
		}

		return &storage{
			posts:       store.Posts(),
			submissions: store.Submissions(),
			health:      store,
			close:       store.Close,
		}, nil
	}

	dynamoCfg := dynamostore.Config{
		Region:           cfg.DynamoDB.Region,
		Endpoint:         cfg.DynamoDB.Endpoint,
		AccessKeyID:      cfg.DynamoDB.AccessKeyID,
		SecretAccessKey:  cfg.DynamoDB.SecretAccessKey,
		PostsTable:       cfg.DynamoDB.PostsTable,
		SubmissionsTable: cfg.DynamoDB.SubmissionsTable,
	}

	client, err := dynamostore.NewClient(ctx, dynamoCfg)
	if err != nil {
		return nil, fmt.Errorf("creating dynamodb client: %w", err)
	}

	store := dynamostore.New(client, dynamoCfg)

	return &storage{
		posts:       store.Posts(),
		submissions: store.Submissions(),
		health:      store,
		close:       func() error { return nil },
	}, nil
}

func newNotifier(cfg *config.NotificationConfig, logger *slog.Logger, registry ports.HealthRegistry) (ports.Notifier, error) {
	if cfg.APIKey == "" {
		logger.Warn("notification.api_key is not set, e-mails will only be logged")
		return acl.NewLogNotifier(logger), nil
	}

	client, err := clients.New(clients.Config{
		BaseURL:     cfg.BaseURL,
		ServiceName: "resend",
		Client:      cfg.Client,
		AuthFunc:    acl.BearerAuth(cfg.APIKey),
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating resend client: %w", err)
	}

	notifier := acl.NewResendNotifier(client, cfg.From)

	if err := registry.Register(notifier); err != nil {
		return nil, fmt.Errorf("registering notifier health check: %w", err)
	}

	return notifier, nil
}

// waitForShutdown blocks until a shutdown signal is received or the server
// fails, then drains in-flight requests.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
