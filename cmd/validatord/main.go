// Command validatord runs the TAF validation service: an HTTP API for
// on-demand validation plus an optional Kafka intake pipeline that validates
// documents from the source topic and publishes reports to the sink topic.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/taf-validation-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/taf-validation-service/internal/adapter/kafka"
	"github.com/couchcryptid/taf-validation-service/internal/config"
	"github.com/couchcryptid/taf-validation-service/internal/observability"
	"github.com/couchcryptid/taf-validation-service/internal/pipeline"
	"github.com/couchcryptid/taf-validation-service/internal/schema"
	"github.com/couchcryptid/taf-validation-service/internal/validator"
)

// alwaysReady reports readiness when no intake pipeline is running; the HTTP
// API has no warm-up phase.
type alwaysReady struct{}

func (alwaysReady) CheckReadiness(_ context.Context) error { return nil }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var store schema.Store = schema.EmbeddedStore{}
	if cfg.SchemaDir != "" {
		store = schema.NewDirStore(cfg.SchemaDir)
		logger.Info("using schema directory", "dir", cfg.SchemaDir)
	} else {
		logger.Info("using embedded schemas")
	}

	v := validator.New(store, logger, metrics)

	var ready httpadapter.ReadinessChecker = alwaysReady{}
	var p *pipeline.Pipeline
	var reader *kafkaadapter.Reader
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		writer = kafkaadapter.NewWriter(cfg, logger)
		transformer := pipeline.NewTransformer(v, logger)
		p = pipeline.New(reader, transformer, writer, logger, metrics)
		ready = p
		logger.Info("kafka intake enabled",
			"source_topic", cfg.KafkaSourceTopic, "sink_topic", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka intake disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, v, ready, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start intake pipeline.
	if p != nil {
		go func() {
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
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
