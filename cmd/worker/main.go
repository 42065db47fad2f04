// The worker keeps the profile registry warm: it periodically re-syncs
// every linked profile from the Codeforces API and rebuilds the solved
// leaderboard snapshot so interactive callers get cached results instead
// of triggering a paced bulk fetch themselves.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cf-tools/cf-insight/config"
	"github.com/cf-tools/cf-insight/internal/application"
	"github.com/cf-tools/cf-insight/internal/domain/rank"
	"github.com/cf-tools/cf-insight/internal/infrastructure/external/codeforces"
	"github.com/cf-tools/cf-insight/internal/infrastructure/persistence/postgres"
	"github.com/cf-tools/cf-insight/internal/infrastructure/persistence/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil && ctx.Err() == nil {
		logger.Error("worker failed", "error", err)
		os.Exit(1)
	}
	logger.Info("worker stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	conn, err := postgres.Connect(ctx, postgres.DefaultConfig(cfg.DatabaseURL))
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.Migrate(ctx); err != nil {
		return err
	}

	var cache application.SnapshotCache
	if cfg.RedisEnabled {
		opts, err := goredis.ParseURL(cfg.RedisURL)
		if err != nil {
			return err
		}
		client := goredis.NewClient(opts)
		defer client.Close()
		cache = redis.NewLeaderboardCache(client, cfg.SnapshotTTL)
	}

	client := codeforces.NewClient(codeforces.ClientConfig{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
		PacerConfig: codeforces.PacerConfig{
			MinInterval: cfg.FetchDelay,
		},
		Logger: logger,
		Debug:  cfg.AppDebug,
	})

	svc, err := application.NewService(application.Config{
		Source:          client,
		RegistryRepo:    postgres.NewRegistryRepository(conn),
		Cache:           cache,
		SubmissionLimit: cfg.SubmissionLimit,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	logger.Info("worker started",
		"sync_interval", cfg.SyncInterval.String(),
		"fetch_delay", cfg.FetchDelay.String(),
		"redis_enabled", cfg.RedisEnabled)

	ticker := time.NewTicker(cfg.SyncInterval)
	defer ticker.Stop()

	syncOnce(ctx, svc, logger)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			syncOnce(ctx, svc, logger)
		}
	}
}

// syncOnce runs one sync cycle. Errors are logged, not fatal: the next
// tick retries from scratch and a failed cycle never corrupts state.
func syncOnce(ctx context.Context, svc *application.Service, logger *slog.Logger) {
	started := time.Now()

	if err := svc.SyncProfiles(ctx); err != nil {
		logger.Error("profile sync failed", "error", err)
		return
	}

	snap, err := svc.RebuildLeaderboard(ctx, rank.MetricSolved)
	if err != nil {
		logger.Error("leaderboard rebuild failed", "error", err)
		return
	}

	logger.Info("sync cycle complete",
		"profiles", svc.Registry().Len(),
		"snapshot_id", snap.ID,
		"entries", len(snap.Entries),
		"took", time.Since(started).String())
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if cfg.AppDebug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
