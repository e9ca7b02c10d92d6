package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadflow_backend/internal/adapters"
	"leadflow_backend/internal/adapters/storage"
	"leadflow_backend/internal/customers"
	"leadflow_backend/internal/dashboard"
	"leadflow_backend/internal/events"
	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/internal/http/router"
	"leadflow_backend/internal/leads"
	"leadflow_backend/internal/payments"
	"leadflow_backend/internal/records"
	"leadflow_backend/internal/salestasks"
	"leadflow_backend/internal/technical"
	"leadflow_backend/platform/config"
	"leadflow_backend/platform/db"
	"leadflow_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	if cfg.MigrationsEnabled {
		if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
			return db.RunMigrations(ctx, pool)
		}); err != nil {
			log.Error("failed to run database migrations", "error", err)
			panic("failed to run database migrations: " + err.Error())
		}
		log.Info("database migrations complete")
	}

	eventBus := events.NewInMemoryBus(log)
	val := records.NewValidator()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	receipts := initReceiptStore(ctx, cfg, log)

	cacheClient, closeCache := initCacheClient(cfg, log)
	if closeCache != nil {
		defer closeCache()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	lifecycleTx := adapters.NewLifecycleTransactor(pool)
	leadsModule := leads.NewModule(pool, lifecycleTx, eventBus, val, cfg, log, registry)
	paymentsModule := payments.NewModule(pool, receipts, cfg.GetMinIOMaxFileSize(), eventBus, val, log)
	salesTasksModule := salestasks.NewModule(pool, eventBus, val, log)
	technicalModule := technical.NewModule(pool, eventBus, val, log)
	customersModule := customers.NewModule(pool, val, log)
	dashboardModule := dashboard.NewModule(pool, dashboard.NewCache(cacheClient, cfg.GetDashboardCacheTTL(), log), eventBus, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Registry: registry,
		Modules: []apphttp.Module{
			leadsModule,
			salesTasksModule,
			paymentsModule,
			technicalModule,
			customersModule,
			dashboardModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initReceiptStore connects receipt storage when MinIO is configured. Without
// it the receipt endpoints answer 502.
func initReceiptStore(ctx context.Context, cfg *config.Config, log *logger.Logger) *storage.MinIOStore {
	if !cfg.IsMinIOEnabled() {
		log.Warn("MINIO_ENDPOINT not configured; payment receipts disabled")
		return nil
	}

	store, err := storage.NewMinIOStore(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}
	if err := withRetry(ctx, log, "ensure receipts bucket", 5, 2*time.Second, func() error {
		return store.EnsureBucket(ctx)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", cfg.GetMinioBucketReceipts())
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
	log.Info("storage service initialized", "receiptsBucket", cfg.GetMinioBucketReceipts())
	return store
}

// initCacheClient returns nil when Redis is not configured; the dashboard
// then queries on every request.
func initCacheClient(cfg config.CacheConfig, log *logger.Logger) (*redis.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; dashboard cache disabled")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("invalid REDIS_URL; dashboard cache disabled", "error", err)
		return nil, nil
	}

	client := redis.NewClient(opt)
	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
