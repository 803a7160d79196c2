package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tournevent/gls/internal/config"
	"github.com/tournevent/gls/internal/storage"
	"github.com/tournevent/gls/internal/telemetry"
	"github.com/tournevent/gls/pkg/gls"
	"github.com/tournevent/gls/pkg/gls/label"
	"github.com/tournevent/gls/pkg/gls/unibox"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return nil, func(context.Context) error { return nil }, nil
	}
	return telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
}

// initPipeline wires the persistence boundary, the carrier client and the
// label orchestrator from configuration.
func initPipeline(cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer) (*storage.Store, *gls.Orchestrator, error) {
	if cfg.DatabaseDSN == "" {
		return nil, nil, fmt.Errorf("DATABASE_DSN is required")
	}

	store, err := storage.Open(cfg.DatabaseDSN, logger)
	if err != nil {
		return nil, nil, err
	}

	var apiClient unibox.APIClient
	if cfg.GLSUseMock {
		apiClient = unibox.NewMockAPIClient()
	} else {
		apiClient = unibox.NewTCPAPIClient(unibox.TCPAPIClientConfig{
			Server:  cfg.GLSServer,
			Port:    cfg.GLSPort,
			Test:    cfg.GLSIsTest,
			Timeout: 30 * time.Second,
		})
	}

	renderer := label.NewRenderer(label.NewStore())

	orchestrator := gls.NewOrchestrator(gls.Config{
		Carrier:  cfg.Carrier(),
		Template: label.StandardTemplate,
	}, store, apiClient, renderer, logger, tracer)

	return store, orchestrator, nil
}
