package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/clearbrook/stream-temp-sim/internal/adapter/httpadapter"
	kafkaadapter "github.com/clearbrook/stream-temp-sim/internal/adapter/kafka"
	"github.com/clearbrook/stream-temp-sim/internal/config"
	"github.com/clearbrook/stream-temp-sim/internal/domain"
	"github.com/clearbrook/stream-temp-sim/internal/engine"
	"github.com/clearbrook/stream-temp-sim/internal/observability"
	"github.com/clearbrook/stream-temp-sim/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Validate site parameters once at setup. An out-of-range hard bound
	// means the configuration is unusable: halt until corrected.
	params, err := config.LoadSiteParams(cfg.SiteParamsFile)
	if err != nil {
		logger.Error("failed to load site parameters", "error", err)
		os.Exit(1)
	}
	validated, warnings, err := domain.ValidateSiteParams(params)
	if err != nil {
		var invalid *domain.InvalidParameterError
		if errors.As(err, &invalid) {
			logger.Error("invalid site parameter", "field", invalid.Field, "error", invalid.Message)
		} else {
			logger.Error("site parameter validation failed", "error", err)
		}
		os.Exit(1)
	}
	for _, w := range warnings {
		logger.Warn("site parameter corrected", "warning", w)
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	simulator := pipeline.NewSimulator(engine.New(validated), logger, metrics)

	p := pipeline.New(reader, simulator, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start simulation pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
