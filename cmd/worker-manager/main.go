// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"intent-workers/internal/api"
	"intent-workers/internal/common/camunda"
	"intent-workers/internal/common/config"
	"intent-workers/internal/common/database"
	"intent-workers/internal/common/logger"
	"intent-workers/internal/common/observability"
	"intent-workers/internal/intent"
	"intent-workers/internal/intent/audit"
	"intent-workers/internal/intent/cache"
	"intent-workers/pkg/registry"

	ee "intent-workers/internal/workers/ai-conversation/evaluate-expression"
	pui "intent-workers/internal/workers/ai-conversation/process-user-input"
)

const (
	serviceName     = "worker-manager"
	shutdownTimeout = 30 * time.Second
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs, err := observability.New(serviceName)
	if err != nil {
		zapLog.Fatal("observability setup failed", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			zapLog.Error("observability shutdown failed", zap.Error(err))
		}
	}()

	reg := registry.Default()
	if path := cfg.Intent.RegistryPath; path != "" {
		reg, err = registry.LoadRegistry(path)
		if err != nil {
			zapLog.Fatal("activity registry load failed", zap.String("path", path), zap.Error(err))
		}
	}
	if err := reg.Validate(); err != nil {
		zapLog.Fatal("activity registry invalid", zap.Error(err))
	}

	var probes []api.ReadyFunc

	// --- Result cache (Redis) ---
	var resultCache *cache.Cache
	if cfg.Intent.CacheEnabled {
		rc, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			zapLog.Fatal("redis config invalid", zap.Error(err))
		}
		defer rc.Close()

		err = retryWithBackoff(func() error {
			return rc.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}

		resultCache = cache.New(rc.Client, cfg.Intent.CacheTTLDuration(), log)
		probes = append(probes, rc.Ping)
		zapLog.Info("Result cache enabled", zap.Duration("ttl", cfg.Intent.CacheTTLDuration()))
	}

	// --- Audit store (PostgreSQL) with retry ---
	var auditStore *audit.Store
	if cfg.Intent.AuditEnabled {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			zapLog.Fatal("postgres open failed", zap.Error(err))
		}
		defer pg.Close()

		err = retryWithBackoff(func() error {
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		if err := pg.Migrate(ctx); err != nil {
			zapLog.Fatal("audit migration failed", zap.Error(err))
		}

		auditStore = audit.NewStore(pg.DB)
		probes = append(probes, pg.Ping)
		zapLog.Info("Audit store enabled")
	}

	// --- Zeebe client with retry ---
	zeebe, err := camunda.NewClientWithConfig(ctx, camunda.ConfigFromSettings(cfg.Camunda))
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer func() {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}()
	probes = append(probes, zeebe.HealthCheck)
	zapLog.Info("Zeebe client connected successfully", zap.String("gateway", cfg.Camunda.BrokerAddress))

	controller := intent.NewController(intent.WithLogger(log))

	puiHandler, err := pui.NewHandler(pui.HandlerOptions{
		AppConfig:     cfg,
		Controller:    controller,
		Cache:         resultCache,
		Audit:         auditStore,
		Observability: obs,
		Registry:      reg,
		Logger:        log,
	})
	if err != nil {
		zapLog.Fatal("failed to create process-user-input handler", zap.Error(err))
	}

	eeHandler, err := ee.NewHandler(ee.HandlerOptions{
		AppConfig:     cfg,
		Observability: obs,
		Registry:      reg,
		Logger:        log,
	})
	if err != nil {
		zapLog.Fatal("failed to create evaluate-expression handler", zap.Error(err))
	}

	var workers []*camunda.CamundaWorker
	for _, w := range []struct {
		taskType string
		handle   camunda.HandlerFunc
	}{
		{pui.TaskType, puiHandler.Handle},
		{ee.TaskType, eeHandler.Handle},
	} {
		if cw := camunda.NewWorker(zeebe.GetClient(), w.taskType, config.GetWorkerConfig(cfg, w.taskType), w.handle, obs, log); cw != nil {
			workers = append(workers, cw)
		}
	}
	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- HTTP API, health & metrics ---
	server := api.New(api.Options{
		Config:        cfg.Server,
		Service:       serviceName,
		Version:       cfg.App.Version,
		Controller:    controller,
		Cache:         resultCache,
		Audit:         auditStore,
		Observability: obs,
		Registry:      reg,
		Ready: func(ctx context.Context) error {
			for _, probe := range probes {
				if err := probe(ctx); err != nil {
					return err
				}
			}
			return nil
		},
		Logger: log,
	})

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Server.Enabled {
		g.Go(server.Start)
	}
	g.Go(func() error {
		<-gctx.Done()
		zapLog.Info("Shutdown signal received, stopping workers...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if cfg.Server.Enabled {
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("http shutdown: %w", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		zapLog.Error("worker manager stopped with error", zap.Error(err))
	}

	for _, w := range workers {
		w.Stop()
	}
	zapLog.Info("Worker manager stopped")
}
