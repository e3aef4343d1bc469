package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Krishna8167/tempuscache/v2/internal/cache"
	"github.com/Krishna8167/tempuscache/v2/internal/config"
	"github.com/Krishna8167/tempuscache/v2/internal/health"
	"github.com/Krishna8167/tempuscache/v2/internal/httpapi"
	"github.com/Krishna8167/tempuscache/v2/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the cache server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	if cfg.Environment == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if level, levelErr := zerolog.ParseLevel(cfg.LogLevel); levelErr == nil {
		zerolog.SetGlobalLevel(level)
	}

	logger.Info().
		Str("environment", cfg.Environment).
		Str("http_addr", cfg.HTTPAddr).
		Int("max_size", cfg.MaxSize).
		Dur("sweep_interval", cfg.SweepInterval).
		Msg("starting tempuscache")

	engine := cache.New(
		cache.WithMaxSize(cfg.MaxSize),
		cache.WithDefaultTTL(cfg.DefaultTTL),
		cache.WithSweepInterval(cfg.SweepInterval),
		cache.WithSweepBatchSize(cfg.SweepBatchSize),
	)
	defer engine.Shutdown()

	checker := health.NewChecker(logger)
	checker.Register("cache_engine", func(ctx context.Context) health.Status {
		if engine == nil {
			return health.StatusDown
		}
		return health.StatusOK
	})

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
		go syncMetricsLoop(engine, m)
	}

	srv := httpapi.NewServer(httpapi.ServerConfig{
		ListenAddr:   cfg.HTTPAddr,
		CORSEnabled:  cfg.CORSEnabled,
		CORSOrigins:  cfg.CORSOrigins,
		RateLimitRPS: cfg.RateLimitRPS,
	}, engine, checker, m, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down gracefully")
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
		return err
	}

	shutdownDone := make(chan error, 1)
	go func() { shutdownDone <- srv.Shutdown() }()

	select {
	case err := <-shutdownDone:
		if err != nil {
			logger.Error().Err(err).Msg("error during shutdown")
			return err
		}
	case <-time.After(cfg.ShutdownTimeout):
		logger.Warn().Dur("timeout", cfg.ShutdownTimeout).Msg("shutdown timed out, exiting anyway")
	}

	return nil
}

func syncMetricsLoop(c *cache.Cache, m *metrics.Metrics) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		stats := c.Stats()
		m.SyncCacheStats(stats.Hits, stats.Misses, stats.Evictions, stats.ExpiredRemovals, stats.CurrentSize)
	}
}
