package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tournevent/gls/internal/server"
	"go.uber.org/zap"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "glsbridge",
	Short:   "GLS Label Bridge - Unibox shipping label service",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var labelCmd = &cobra.Command{
	Use:   "label <shipment-id>",
	Short: "Generate labels for one shipment and exit",
	Args:  cobra.ExactArgs(1),
	RunE:  runLabel,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(labelCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Initialize telemetry
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tracer, tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
	} else {
		defer tracerShutdown(ctx)
	}

	store, orchestrator, err := initPipeline(cfg, logger, tracer)
	if err != nil {
		return err
	}

	logger.Info("Starting GLS Label Bridge",
		zap.Int("port", cfg.Port),
		zap.String("version", cfg.Version),
	)

	// Start HTTP server
	srv := server.New(server.Config{Port: cfg.Port}, store, orchestrator, logger)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func runLabel(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	shipmentID := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, orchestrator, err := initPipeline(cfg, logger, nil)
	if err != nil {
		return err
	}

	shipment, err := store.FindShipment(ctx, shipmentID)
	if err != nil {
		return err
	}
	if err := orchestrator.GenerateLabels(ctx, shipment); err != nil {
		return err
	}

	fmt.Printf("%s\t%s\t%s\n", shipment.ID, shipment.ParcelNumber, shipment.TrackingNumber)
	for _, pkg := range shipment.Packages {
		fmt.Printf("%s\t%s\t%s\n", pkg.Code, pkg.ParcelNumber, pkg.TrackingNumber)
	}
	return nil
}
