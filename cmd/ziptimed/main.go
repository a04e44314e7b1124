// Command ziptimed serves the ZIP time resolution API and, when enabled, the
// Kafka render pipeline.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/zip-time-service/internal/adapter/httpapi"
	kafkaadapter "github.com/couchcryptid/zip-time-service/internal/adapter/kafka"
	"github.com/couchcryptid/zip-time-service/internal/config"
	"github.com/couchcryptid/zip-time-service/internal/dataset"
	"github.com/couchcryptid/zip-time-service/internal/observability"
	"github.com/couchcryptid/zip-time-service/internal/pipeline"
	"github.com/couchcryptid/zip-time-service/internal/resolver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := dataset.NewStore(
		dataset.NewClient(cfg.DatasetURL, cfg.DatasetTimeout, logger),
		logger,
		metrics,
	)
	if err := store.Load(ctx); err != nil {
		logger.Error("initial dataset load failed", "error", err)
		os.Exit(1)
	}
	if cfg.DatasetRefreshInterval > 0 {
		go store.Refresh(ctx, cfg.DatasetRefreshInterval)
		logger.Info("dataset refresh enabled", "interval", cfg.DatasetRefreshInterval)
	}

	svc := resolver.New(store, cfg.CacheSize, cfg.LookupTimeout, logger, metrics)

	srv := httpapi.NewServer(cfg.HTTPAddr, svc, store, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the render pipeline when enabled.
	var reader *kafkaadapter.Reader
	var writer *kafkaadapter.Writer
	if cfg.PipelineEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		writer = kafkaadapter.NewWriter(cfg, logger)
		transformer := pipeline.NewTransformer(svc, logger)
		p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

		go func() {
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
	} else {
		logger.Info("render pipeline disabled")
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
