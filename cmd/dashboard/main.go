package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/predict-dashboard-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/predict-dashboard-service/internal/adapter/kafka"
	"github.com/couchcryptid/predict-dashboard-service/internal/adapter/predictapi"
	"github.com/couchcryptid/predict-dashboard-service/internal/config"
	"github.com/couchcryptid/predict-dashboard-service/internal/observability"
	"github.com/couchcryptid/predict-dashboard-service/internal/pipeline"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := predictapi.NewClient(cfg.PredictAPIURL, cfg.PredictTimeout, logger, metrics)
	logger.Info("inference api configured", "url", cfg.PredictAPIURL, "timeout", cfg.PredictTimeout)

	// Event stream is feature-flagged via KAFKA_ENABLED.
	var (
		publisher pipeline.Publisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("assessment events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("assessment events disabled")
	}

	svc := pipeline.New(client, client, publisher, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, cfg.PredictTimeout, svc, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("http server error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
