// Package app provides the application lifecycle management for the
// placesync service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/mapsee-lab/placesync/internal/api"
	"github.com/mapsee-lab/placesync/internal/config"
	"github.com/mapsee-lab/placesync/internal/database"
	"github.com/mapsee-lab/placesync/internal/logger"
	"github.com/mapsee-lab/placesync/internal/metrics"
	"github.com/mapsee-lab/placesync/internal/notify"
	"github.com/mapsee-lab/placesync/internal/reconcile"
	"github.com/mapsee-lab/placesync/internal/refdata"
)

// App holds the service with all its dependencies wired.
type App struct {
	config      *config.Config
	logger      logger.Logger
	store       *database.Store
	redisClient *redis.Client
	httpServer  *http.Server
	version     string
}

// Options configures App construction.
type Options struct {
	ConfigPath string
	Version    string
}

// New loads configuration and wires every dependency. The returned App is
// ready to Run.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	appLogger, err := logger.NewLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	appLogger = appLogger.With(
		logger.String("service", "placesync"),
		logger.String("version", opts.Version),
	)

	db, err := database.NewPostgresConnection(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		_ = appLogger.Sync()
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	store := database.NewStore(db)

	redisClient, err := refdata.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		_ = appLogger.Sync()
		return nil, fmt.Errorf("connect to Redis: %w", err)
	}

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry)

	gateway, err := notify.NewGatewayClient(cfg.Notify.GatewayURL, cfg.Notify.APIKey, appLogger)
	if err != nil {
		_ = appLogger.Sync()
		return nil, fmt.Errorf("create push gateway client: %w", err)
	}
	dispatcher := notify.NewDispatcher(
		store.Recipients,
		gateway,
		cfg.Notify.SendTimeout,
		cfg.Notify.MaxConcurrent,
		m,
		appLogger,
	)

	engine := reconcile.NewEngine(storeAdapter{store}, dispatcher, m, appLogger, reconcile.Config{
		AllowFailedReprocess: cfg.Reconcile.AllowFailedReprocess,
	})

	interestCache := refdata.NewInterestCache(redisClient, store.Interests, cfg.RefData.TTL, appLogger)
	placeService := api.NewPlaceService(store)

	handlers := api.NewHandlers(engine, placeService, interestCache, appLogger)
	router := api.NewRouter(handlers, store, redisClient, registry, cfg, appLogger)

	return &App{
		config:      cfg,
		logger:      appLogger,
		store:       store,
		redisClient: redisClient,
		httpServer:  router.NewServer(),
		version:     opts.Version,
	}, nil
}

// Run starts the HTTP server and blocks until a shutdown signal arrives
// or the server fails.
func (a *App) Run() error {
	serverErr := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server listening",
			logger.String("address", a.config.Server.Address),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		a.logger.Info("Shutdown signal received",
			logger.String("signal", sig.String()),
		)
	}

	return a.Shutdown()
}

// Shutdown stops the server and releases connections.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), config.DefaultShutdownTimeout)
	defer cancel()

	var firstErr error
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("HTTP server forced to stop", logger.Error(err))
		firstErr = err
	}

	if err := a.redisClient.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := a.store.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	a.logger.Info("Service stopped")
	_ = a.logger.Sync()
	return firstErr
}

// storeAdapter lifts the store's transaction runner onto the engine's
// Catalog interface.
type storeAdapter struct {
	store *database.Store
}

func (a storeAdapter) InTx(ctx context.Context, fn func(tx reconcile.Catalog) error) error {
	return a.store.InTx(ctx, func(tx *database.Store) error {
		return fn(tx)
	})
}
