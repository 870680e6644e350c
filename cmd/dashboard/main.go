package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/reservoir-dashboard/internal/adapter/chartimg"
	httpadapter "github.com/couchcryptid/reservoir-dashboard/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/reservoir-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/reservoir-dashboard/internal/adapter/source"
	"github.com/couchcryptid/reservoir-dashboard/internal/config"
	"github.com/couchcryptid/reservoir-dashboard/internal/observability"
	"github.com/couchcryptid/reservoir-dashboard/internal/pipeline"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	loader, err := source.New(cfg.DataSource, source.Options{Timeout: cfg.SourceTimeout, Sheet: cfg.DataSheet}, logger)
	if err != nil {
		logger.Error("invalid data source", "source", cfg.DataSource, "error", err)
		os.Exit(1)
	}

	var renderers []pipeline.Renderer
	if cfg.ChartDir != "" {
		renderers = append(renderers, chartimg.NewRenderer(cfg.ChartDir, logger))
		logger.Info("png charts enabled", "dir", cfg.ChartDir)
	}

	var publisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, logger)
		renderers = append(renderers, publisher)
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	p := pipeline.New(loader, pipeline.Settings{
		Source:    cfg.DataSource,
		Schema:    cfg.Schema,
		TopN:      cfg.TopN,
		Threshold: cfg.StorageThreshold,
	}, logger, metrics, renderers...)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// Initial pass so /readyz reflects the source before the first visitor.
	go func() {
		if _, err := p.Run(ctx); err != nil {
			logger.Warn("initial render pass failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
