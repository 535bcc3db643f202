package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yasheela-alla/cartIt/pkg/health"
	"github.com/yasheela-alla/cartIt/pkg/httpclient"
	pkgkafka "github.com/yasheela-alla/cartIt/pkg/kafka"

	"github.com/yasheela-alla/cartIt/internal/catalog"
	"github.com/yasheela-alla/cartIt/internal/config"
	"github.com/yasheela-alla/cartIt/internal/domain"
	"github.com/yasheela-alla/cartIt/internal/event"
	handler "github.com/yasheela-alla/cartIt/internal/handler/http"
	"github.com/yasheela-alla/cartIt/internal/repository"
	memoryrepo "github.com/yasheela-alla/cartIt/internal/repository/memory"
	redisrepo "github.com/yasheela-alla/cartIt/internal/repository/redis"
	"github.com/yasheela-alla/cartIt/internal/service"
)

// App wires together all dependencies and runs the checkout service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	healthHandler := health.NewHandler()

	// Session store: in-memory by default, Redis when configured.
	sessionTTL := time.Duration(cfg.SessionTTL) * time.Minute
	var repo repository.SessionRepository
	var rdb *redis.Client
	if cfg.SessionStore == config.StoreRedis {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		healthHandler.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		repo = redisrepo.NewSessionRepository(rdb, sessionTTL)
	} else {
		repo = memoryrepo.NewSessionRepository(sessionTTL)
		logger.Info("using in-memory session store")
	}

	// Catalog: built-in by default, remote catalog service when configured.
	cat, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog loaded", slog.Int("products", cat.Len()))

	// Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Shipping policy.
	cost, err := cfg.ShippingCostDecimal()
	if err != nil {
		return nil, fmt.Errorf("parse shipping cost: %w", err)
	}
	discount, err := cfg.ShippingDiscountDecimal()
	if err != nil {
		return nil, fmt.Errorf("parse shipping discount: %w", err)
	}
	shipping := domain.ShippingAdjustment{Cost: cost, Discount: discount}

	// Build the dependency graph.
	eventProducer := event.NewProducer(producer, logger)
	checkoutService := service.NewCheckoutService(cat, repo, eventProducer, logger, shipping)

	// HTTP router.
	router := handler.NewRouter(checkoutService, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		rdb:        rdb,
		producer:   producer,
		httpServer: httpServer,
	}, nil
}

// loadCatalog fetches the product catalog from the remote catalog service when
// CATALOG_URL is set, guarded by a circuit breaker, and falls back to the
// built-in catalog otherwise.
func loadCatalog(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*catalog.Catalog, error) {
	if cfg.CatalogURL == "" {
		return catalog.Default(), nil
	}

	client := httpclient.New(httpclient.DefaultConfig())
	cbClient := httpclient.NewCircuitBreakerClient(client, httpclient.DefaultCircuitBreakerConfig("catalog"), logger)

	cat, err := catalog.LoadHTTP(ctx, cbClient, cfg.CatalogURL)
	if err != nil {
		return nil, fmt.Errorf("load remote catalog: %w", err)
	}
	return cat, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
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
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	// Close Kafka producer.
	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	// Close Redis client when one was opened.
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
