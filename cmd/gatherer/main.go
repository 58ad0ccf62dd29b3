package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/rickgao/bazaar-data/internal/api"
	"github.com/rickgao/bazaar-data/internal/config"
	"github.com/rickgao/bazaar-data/internal/database"
	"github.com/rickgao/bazaar-data/internal/metrics"
	"github.com/rickgao/bazaar-data/internal/poller"
	"github.com/rickgao/bazaar-data/internal/version"
	"github.com/rickgao/bazaar-data/internal/writer"
)

func main() {
	configPath := flag.String("config", "configs/gatherer.local.yaml", "path to config file")
	envFile := flag.String("env", ".env", "optional dotenv file loaded before config expansion")
	flag.Parse()

	if err := run(*configPath, *envFile); err != nil {
		slog.Error("gatherer exited", "error", err)
		os.Exit(1)
	}
}

func run(configPath, envFile string) error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	// Load configuration
	cfg, err := config.LoadAndValidate(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	})).With("instance_id", cfg.Instance.ID)
	slog.SetDefault(logger)

	logger.Info("starting gatherer",
		"version", version.String(),
		"config", configPath,
		"api_url", cfg.API.URL,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	logger.Info("connecting to database", dbLogAttrs(cfg.Database)...)

	store, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}()

	logger.Info("database connected",
		"records", cfg.Database.RecordsCollection,
		"config", cfg.Database.ConfigCollection,
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	apiClient := api.NewClient(
		cfg.API.URL,
		cfg.API.APIKey,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRequireSuccess(cfg.API.RequireSuccess),
	)

	snapshotWriter := writer.NewSnapshotWriter(writer.WriterConfig{
		CreateCounter: cfg.Writer.ShouldCreateCounter(),
		Transactional: cfg.Writer.Transactional,
	}, store, m, logger)

	p := poller.New(poller.Config{
		Interval:            cfg.Poller.Interval,
		ErrorBackoffInitial: cfg.Poller.ErrorBackoffInitial,
		ErrorBackoffMax:     cfg.Poller.ErrorBackoffMax,
		Depth:               cfg.Projection.Depth,
	}, apiClient, snapshotWriter, m, logger)

	healthServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler:           newHealthHandler(store, p, snapshotWriter, reg, cfg.Metrics.Path, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting health server", "port", cfg.Metrics.Port, "metrics_path", cfg.Metrics.Path)
		if err := healthServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := p.Start(gctx); err != nil {
			return fmt.Errorf("start poller: %w", err)
		}
		<-gctx.Done()

		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		pollErr := p.Stop(shutdownCtx)
		srvErr := healthServer.Shutdown(shutdownCtx)
		return errors.Join(pollErr, srvErr)
	})

	err = g.Wait()

	stats := snapshotWriter.Stats()
	logger.Info("gatherer stopped",
		"cycles", stats.Cycles,
		"inserts", stats.Inserts,
		"errors", stats.Errors,
		"counter_misses", stats.CounterMisses,
	)
	return err
}

// dbLogAttrs describes the store target without leaking credentials.
// An explicit URI replaces host and port entirely.
func dbLogAttrs(cfg config.DatabaseConfig) []any {
	if cfg.URI != "" {
		return []any{"uri_set", true, "database", cfg.Name}
	}
	return []any{"host", cfg.Host, "port", cfg.Port, "database", cfg.Name}
}
