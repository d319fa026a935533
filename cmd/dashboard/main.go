package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dwh-dashboard/internal/config"
	"dwh-dashboard/internal/format"
	"dwh-dashboard/internal/observability"
	"dwh-dashboard/internal/platform/cache"
	"dwh-dashboard/internal/service/dashboard"
	"dwh-dashboard/internal/service/export"
	"dwh-dashboard/internal/source"
	"dwh-dashboard/internal/source/etlapi"
	"dwh-dashboard/internal/storage/mysql"
	"dwh-dashboard/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env, cfg.ErrorLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	formatter, err := format.New(cfg.Locale)
	if err != nil {
		log.Error("invalid locale", slog.String("error", err.Error()))
		os.Exit(1)
	}

	etl := etlapi.New(cfg.BaseURL, cfg.FetchTimeout)

	feed, closeFeed, err := setupFeed(ctx, cfg, etl)
	if err != nil {
		log.Error("failed to open row source", slog.String("kind", cfg.Source.Kind), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeFeed()

	store, closeStore, err := setupStore(ctx, cfg)
	if err != nil {
		log.Error("failed to open feed cache", slog.String("kind", cfg.Cache.Kind), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	metrics := observability.NewMetrics()

	policy := source.DefaultPolicy()
	policy.StaleTime = cfg.StaleTime
	policy.Retries = cfg.Retries
	policy.RetryDelay = cfg.RetryDelay
	policy.FetchTimeout = cfg.FetchTimeout

	feeds := source.NewCached(feed, store, policy, log).WithObserver(metrics)
	dashboards := dashboard.New(feeds, formatter, log)

	deps := dependencies{
		dashboard: dashboards,
		export:    export.New(dashboards),
		etl:       etl,
		feeds:     feeds,
		metrics:   metrics,
	}

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, deps),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", slog.String("error", err.Error()))
		}
	}()

	log.Info("server started",
		slog.String("address", cfg.Address),
		slog.String("source", cfg.Source.Kind),
		slog.String("cache", cfg.Cache.Kind),
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("failed start server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped")
}

func setupFeed(ctx context.Context, cfg *config.Config, etl *etlapi.Client) (source.Feed, func(), error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	switch cfg.Source.Kind {
	case config.SourceMySQL:
		s, err := mysql.New(connectCtx, cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case config.SourcePostgres:
		pool, err := postgres.NewPool(connectCtx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.New(pool), pool.Close, nil
	default:
		return etl, func() {}, nil
	}
}

func setupStore(ctx context.Context, cfg *config.Config) (source.Store, func(), error) {
	if cfg.Cache.Kind != config.CacheRedis {
		return source.NewMemoryStore(), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := cache.New(connectCtx, cfg.RedisAddr)
	if err != nil {
		return nil, nil, err
	}
	return source.NewRedisStore(client), func() { _ = client.Close() }, nil
}
