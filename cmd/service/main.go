// Package main is the entry point for the wedding RSVP service.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/clients"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/clients/acl"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/http"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/http/handlers"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/http/views"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/memstore"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/spreadsheet"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/sqlitestore"
	"github.com/jsamuelsen/wedding-rsvp/internal/app"
	"github.com/jsamuelsen/wedding-rsvp/internal/platform/config"
	"github.com/jsamuelsen/wedding-rsvp/internal/platform/logging"
	"github.com/jsamuelsen/wedding-rsvp/internal/platform/metrics"
	"github.com/jsamuelsen/wedding-rsvp/internal/platform/telemetry"
	"github.com/jsamuelsen/wedding-rsvp/internal/ports"
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

	// 1. Pick up a local .env before anything reads the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
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
		slog.String("guest_store", cfg.Services.Guests.Mode),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
		Insecure:     cfg.Telemetry.Insecure,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	recorder := metrics.New(prometheus.DefaultRegisterer)
	healthRegistry := ports.NewHealthRegistry()

	// 5. Guest store
	store, closeStore, err := newGuestStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := closeStore.Close(); closeErr != nil {
			logger.Error("guest store close error", slog.Any("error", closeErr))
		}
	}()

	if checker, ok := store.(ports.HealthChecker); ok {
		if err := healthRegistry.Register(checker); err != nil {
			return fmt.Errorf("registering guest store health check: %w", err)
		}
	}

	// 6. Application services
	loc := cfg.Event.Location()

	guestService := app.NewGuestService(app.GuestServiceConfig{
		Store:   store,
		Metrics: recorder,
		Logger:  logger,
	})
	rsvpService := app.NewRSVPService(app.RSVPServiceConfig{
		Store:   store,
		Metrics: recorder,
		Logger:  logger,
	})
	exportService := app.NewExportService(app.ExportServiceConfig{
		Encoder:  spreadsheet.NewExcel(),
		Location: loc,
		Metrics:  recorder,
		Logger:   logger,
	})

	// 7. Handlers
	renderer, err := views.New()
	if err != nil {
		return fmt.Errorf("loading page templates: %w", err)
	}

	sessionStore, err := handlers.NewSessionStore(handlers.SessionStoreConfig{
		Dir:    cfg.Session.Dir,
		Secret: cfg.Session.Secret,
		MaxAge: cfg.Session.MaxAge,
		Secure: cfg.Session.Secure,
	})
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}

	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	buildInfo.GuestStore = cfg.Services.Guests.Mode

	routerCfg := http.RouterConfig{
		ServiceName:   cfg.App.Name,
		HealthHandler: handlers.NewHealthHandler(healthRegistry, buildInfo),
		RSVPHandler: handlers.NewRSVPHandler(handlers.RSVPHandlerConfig{
			Service:     rsvpService,
			Sessions:    sessionStore,
			SessionName: cfg.Session.Name,
			Views:       renderer,
			Event: views.Event{
				Couple:   cfg.Event.Couple,
				Date:     cfg.Event.Date,
				Venue:    cfg.Event.Venue,
				PhotoURL: cfg.Event.PhotoURL,
			},
		}),
		GuestsHandler: handlers.NewGuestsHandler(handlers.GuestsHandlerConfig{
			Guests:   guestService,
			Export:   exportService,
			Views:    renderer,
			Location: loc,
		}),
		APIHandler: handlers.NewGuestAPIHandler(guestService, rsvpService),
		Timeout:    http.DefaultRequestTimeout,
		PanicHook:  recorder.Panic,
	}

	// 8. HTTP server
	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), routerCfg)

	serverErr := server.Start()

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// newGuestStore builds the store selected by services.guests.mode. The
// returned closer releases it on shutdown.
func newGuestStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.GuestStore, io.Closer, error) {
	guests := cfg.Services.Guests

	switch guests.Mode {
	case config.StoreModeMemory:
		return memstore.New(), nopCloser{}, nil

	case config.StoreModeSQLite:
		store, err := sqlitestore.Open(logging.WithContext(ctx, logger), guests.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening guest database: %w", err)
		}

		return store, store, nil

	default:
		httpClient, err := clients.New(&clients.Config{
			BaseURL:     guests.BaseURL,
			ServiceName: guests.Name,
			Timeout:     cfg.Client.Timeout,
			Retry:       cfg.Client.Retry,
			Circuit:     cfg.Client.CircuitBreaker,
			Transport:   cfg.Client.Transport,
			UserAgent:   cfg.App.Name + "/" + cfg.App.Version,
			Logger:      logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("creating guest endpoint client: %w", err)
		}

		return acl.NewGuestClient(acl.GuestClientConfig{
			Client:      httpClient,
			ServiceName: guests.Name,
			Logger:      logger,
		}), nopCloser{}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serverErr:
		if !ok {
			return nil
		}

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
