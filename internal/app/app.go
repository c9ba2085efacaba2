// Package app wires the storefront engine together: the device-local Redis
// store, the remote API client, the broadcaster and the services on top of
// them. It also serves the Prometheus metrics endpoint.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/utafrali/storefront/internal/backend"
	"github.com/utafrali/storefront/internal/broadcast"
	"github.com/utafrali/storefront/internal/config"
	redisrepo "github.com/utafrali/storefront/internal/repository/redis"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/internal/session"
	"github.com/utafrali/storefront/pkg/httpclient"
	"github.com/utafrali/storefront/pkg/tracing"
)

// App holds the wired storefront engine.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	rdb    *redis.Client

	bus      *broadcast.Broadcaster
	sessions *session.Manager
	carts    *service.CartService
	catalog  *service.CatalogService
	orders   *service.OrderService
	auth     *service.AuthService

	metricsServer   *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Tracing first so every component picks up the global provider.
	tracingShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.TracingEndpoint,
		SampleRate:     cfg.TracingSampleRate,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// Device-local durable store.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.StoreAddr,
		Password: cfg.StorePass,
		DB:       cfg.StoreDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to local store: %w", err)
	}
	logger.Info("connected to local store",
		slog.String("addr", cfg.StoreAddr),
		slog.Int("db", cfg.StoreDB),
	)

	// Remote API client with retries and a circuit breaker.
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.BackendTimeout()
	httpCfg.MaxRetries = cfg.BackendMaxRetries
	baseClient := httpclient.New(httpCfg)
	breaker := httpclient.NewCircuitBreakerClient(baseClient,
		httpclient.DefaultCircuitBreakerConfig("storefront-backend"), logger)
	api := backend.NewClient(breaker, cfg.BackendURL, logger)

	// Build the dependency graph.
	bus := broadcast.New()
	local := redisrepo.NewLocalCartStore(rdb)
	creds := redisrepo.NewCredentialStore(rdb)
	sessions := session.NewManager(creds, logger)

	reconciler := service.NewReconciler(local, api, bus, logger,
		tracing.Tracer("storefront"), cfg.ReconcileDispatchDelay())

	app := &App{
		cfg:             cfg,
		logger:          logger,
		rdb:             rdb,
		bus:             bus,
		sessions:        sessions,
		carts:           service.NewCartService(local, api, sessions, bus, logger),
		catalog:         service.NewCatalogService(api, logger),
		orders:          service.NewOrderService(api, sessions, bus, logger),
		auth:            service.NewAuthService(api, creds, reconciler, bus, logger),
		tracingShutdown: tracingShutdown,
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	app.metricsServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	return app, nil
}

// Carts returns the cart mutation service.
func (a *App) Carts() *service.CartService { return a.carts }

// Catalog returns the catalog service.
func (a *App) Catalog() *service.CatalogService { return a.catalog }

// Orders returns the order service.
func (a *App) Orders() *service.OrderService { return a.orders }

// Auth returns the auth service.
func (a *App) Auth() *service.AuthService { return a.auth }

// Sessions returns the session manager.
func (a *App) Sessions() *session.Manager { return a.sessions }

// Broadcaster returns the cart snapshot broadcaster.
func (a *App) Broadcaster() *broadcast.Broadcaster { return a.bus }

// Run serves the metrics endpoint and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("serving metrics", slog.String("addr", a.metricsServer.Addr))
		if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.metricsServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("metrics server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("local store close error", slog.String("error", err.Error()))
	}

	a.logger.Info("shutdown complete")
	return nil
}
