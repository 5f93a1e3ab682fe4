// cmd/worker-manager/main.go
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

	"go.uber.org/zap"

	"ghotok-workers/internal/auth"
	awsclient "ghotok-workers/internal/common/aws"
	"ghotok-workers/internal/common/camunda"
	"ghotok-workers/internal/common/config"
	"ghotok-workers/internal/common/database"
	"ghotok-workers/internal/common/logger"
	"ghotok-workers/internal/common/observability"
	"ghotok-workers/internal/matching"
	"ghotok-workers/internal/options"
	"ghotok-workers/internal/profiles"
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
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name, zapLog)
	ctx := context.Background()

	// --- Zeebe ---
	zeebe, err := camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: cfg.Camunda.UsePlaintextConnection,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		RetryConfig:            &camunda.RetryConfig{MaxRetries: 10, BaseDelay: 2 * time.Second, MaxDelay: 30 * time.Second},
	}, zapLog)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	if err := pg.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("schema migration failed", zap.Error(err))
	}
	zapLog.Info("PostgreSQL connected successfully")

	// --- Redis ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	checks := map[string]healthCheck{
		"postgres": pg.Ping,
		"redis":    rdb.Ping,
	}

	// --- Elasticsearch (optional) ---
	var index *profiles.Index
	if cfg.Profiles.UseElasticsearch {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		index = profiles.NewIndex(esClient.Client, cfg.Profiles.SearchIndex)
		if err := index.EnsureIndex(ctx); err != nil {
			zapLog.Fatal("search index setup failed", zap.Error(err))
		}
		checks["elasticsearch"] = esClient.Ping
		zapLog.Info("Elasticsearch connected successfully", zap.String("index", index.Name()))
	}

	// --- Domain services ---
	svc := &services{
		profiles: profiles.NewStore(pg.DB, rdb.Client,
			profiles.NewIDGenerator(cfg.Profiles.IDPrefix, matching.NewSeededSource(0)),
			profiles.StoreConfig{
				PoolCacheTTL:  config.Seconds(cfg.Matching.PoolCacheTTL),
				StatsCacheTTL: config.Seconds(cfg.Profiles.StatsCacheTTL),
				IDMaxAttempts: cfg.Profiles.IDMaxAttempts,
			}, log),
		index:   index,
		options: options.NewStore(pg.DB),
		authenticator: auth.NewAuthenticator(
			auth.NewUserStore(pg.DB),
			auth.NewSessionStore(rdb.Client, config.Seconds(cfg.Auth.SessionTTL)),
			cfg.Auth.BcryptCost,
			auth.Bootstrap{
				Username: cfg.Auth.BootstrapUsername,
				Password: cfg.Auth.BootstrapPassword,
				Email:    cfg.Auth.BootstrapEmail,
			}, log),
		matcher: matching.NewMatcher(matching.Options{
			WindowSize: cfg.Matching.RecentWindowSize,
			Rand:       matching.NewSeededSource(cfg.Matching.RandomSeed),
		}),
	}

	n := cfg.Notifications
	if n.Email.Enabled || n.SMS.Enabled {
		awsCfg, err := awsclient.LoadConfig(ctx, n.AWS.Region)
		if err != nil {
			zapLog.Fatal("aws config failed", zap.Error(err))
		}
		if n.Email.Enabled {
			svc.email = awsclient.NewMailer(awsclient.NewSESClient(awsCfg), n.Email.FromEmail)
		}
		if n.SMS.Enabled {
			svc.sms = awsclient.NewTexter(awsclient.NewSNSClient(awsCfg), n.SMS.SenderID)
		}
	}

	// --- Workers ---
	workers := startWorkers(zeebe.GetClient(), cfg, buildHandlers(cfg, svc, log), zapLog, obs)
	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	health := newHealthServer(checks)
	server := &http.Server{Addr: cfg.Server.Address, Handler: health.routes()}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()
	health.ready.Store(true)

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	health.ready.Store(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping meter provider", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
