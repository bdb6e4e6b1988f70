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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"juntell/careers-gateway/cmd/configs"
	"juntell/careers-gateway/gateway"
	"juntell/careers-gateway/gateway/middleware/ratelimiter"
	"juntell/careers-gateway/internal/application"
	"juntell/careers-gateway/internal/careers"
	"juntell/careers-gateway/internal/database/local"
	"juntell/careers-gateway/internal/database/postgres"
	"juntell/careers-gateway/internal/infra/api"
	"juntell/careers-gateway/internal/storage"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, log, err := loadConfigs()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, config, log)
	},
}

func serve(ctx context.Context, config *configs.Config, log *zap.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	backend, closeBackend, err := newBackend(ctx, config, log)
	if err != nil {
		return err
	}
	defer closeBackend()

	limiter := ratelimiter.New(backend,
		ratelimiter.WithLogger(log),
		ratelimiter.WithMetrics(ratelimiter.NewMetrics(reg)),
		ratelimiter.WithCleanupInterval(config.CleanupInterval()),
	)
	limiter.StartCleanupWorker(ctx)
	defer limiter.Stop()

	stores, err := newRepositories(ctx, config, log)
	if err != nil {
		return err
	}
	defer stores.close()

	var files *storage.Service
	presigner, err := storage.NewS3Presigner(ctx, storage.S3Config{
		Region:          config.AWSRegion,
		AccessKeyID:     config.AWSAccessKeyID,
		SecretAccessKey: config.AWSSecretAccessKey,
		Bucket:          config.AWSS3BucketName,
	})
	switch {
	case errors.Is(err, storage.ErrNotConfigured):
		log.Warn("S3 is not configured; upload endpoints will answer 503")
	case err != nil:
		return fmt.Errorf("init S3 presigner: %w", err)
	default:
		files = storage.NewService(presigner)
	}

	router := gateway.NewRouter(gateway.Options{
		Logger:         log,
		AllowedOrigins: config.AllowedOrigins(),
	})
	handlers := api.NewHandlers(
		application.NewService(stores.applications, log),
		careers.NewService(stores.jobs, log),
		files, limiter, log)
	handlers.Register(router, api.RouteOptions{
		Policy:     config.Policy(),
		AdminToken: config.AdminToken,
		Gatherer:   reg,
	})
	if config.AdminToken == "" {
		log.Info("ADMIN_TOKEN is empty; admin routes are disabled")
	}

	srv := &http.Server{
		Addr:              ":" + config.ServerPort,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting web server",
			zap.String("addr", srv.Addr),
			zap.Int("max_requests", config.Policy().MaxRequests),
			zap.Duration("window", config.Policy().Window),
			zap.String("backend", config.RateLimiterBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newBackend(ctx context.Context, config *configs.Config, log *zap.Logger) (ratelimiter.Backend, func(), error) {
	if config.RateLimiterBackend != configs.BackendRedis {
		return ratelimiter.NewMemoryBackend(), func() {}, nil
	}

	client, err := newRedisClient(ctx, config)
	if err != nil {
		return nil, nil, err
	}
	log.Warn("rate limit state is shared through Redis; checks are atomic only within one process",
		zap.String("addr", config.RateLimiterRedisAddr))
	return ratelimiter.NewRedisBackend(client, config.RateLimiterRedisPrefix, ratelimiter.WithRedisLogger(log)), func() { _ = client.Close() }, nil
}

func newRedisClient(ctx context.Context, config *configs.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: config.RateLimiterRedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", config.RateLimiterRedisAddr, err)
	}
	return client, nil
}

type repositories struct {
	applications application.Repository
	jobs         careers.Repository
	close        func()
}

func newRepositories(ctx context.Context, config *configs.Config, log *zap.Logger) (*repositories, error) {
	if config.DatabaseURL == "" {
		log.Warn("DATABASE_URL is empty; applications and job postings are kept in memory")
		return &repositories{
			applications: local.InitDataSource(),
			jobs:         local.InitJobSource(),
			close:        func() {},
		}, nil
	}

	pool, err := postgres.Connect(ctx, config.DatabaseURL)
	if err != nil {
		return nil, err
	}
	apps := postgres.NewApplicationRepo(pool)
	jobs := postgres.NewJobRepo(pool)
	for _, migrate := range []func(context.Context) error{apps.Migrate, jobs.Migrate} {
		if err := migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return &repositories{applications: apps, jobs: jobs, close: pool.Close}, nil
}
