package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tournevent/gls/internal/telemetry"
	"github.com/tournevent/gls/pkg/gls"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Server is the HTTP server for the label service.
type Server struct {
	port         int
	store        gls.Store
	orchestrator *gls.Orchestrator
	logger       *otelzap.Logger
	metrics      *telemetry.Metrics
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New creates a new server instance.
func New(cfg Config, store gls.Store, orchestrator *gls.Orchestrator, logger *otelzap.Logger) *Server {
	return &Server{
		port:         cfg.Port,
		store:        store,
		orchestrator: orchestrator,
		logger:       logger,
		metrics:      telemetry.NewMetrics(),
	}
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", s.handleHealth)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	// Label generation
	mux.HandleFunc("POST /v1/shipments/{id}/labels", s.handleGenerateLabels)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type packageResult struct {
	Code           string `json:"code,omitempty"`
	ParcelNumber   string `json:"parcel_number"`
	TrackingNumber string `json:"tracking_number"`
}

type labelResponse struct {
	ShipmentID     string          `json:"shipment_id"`
	LabelStatus    string          `json:"label_status"`
	ParcelNumber   string          `json:"parcel_number,omitempty"`
	TrackingNumber string          `json:"tracking_number,omitempty"`
	Packages       []packageResult `json:"packages,omitempty"`
}

type errorResponse struct {
	Error     string   `json:"error"`
	Code      string   `json:"code,omitempty"`
	Unit      string   `json:"unit,omitempty"`
	Remaining []string `json:"remaining,omitempty"`
}

func (s *Server) handleGenerateLabels(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := r.PathValue("id")

	shipment, err := s.store.FindShipment(r.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, gls.ErrShipmentNotFound) {
			status = http.StatusNotFound
		}
		s.writeError(w, status, err)
		return
	}

	start := time.Now()
	err = s.orchestrator.GenerateLabels(r.Context(), shipment)
	duration := time.Since(start).Seconds()

	if err != nil {
		s.logger.Error("Label generation failed",
			zap.String("shipment", id),
			zap.Error(err),
		)
		s.metrics.RecordLabelRun("error", duration)

		status := http.StatusInternalServerError
		resp := errorResponse{Error: err.Error()}
		var le *gls.LabelError
		if errors.As(err, &le) {
			resp.Code = le.Code
			resp.Unit = le.Unit
			resp.Remaining = le.Remaining
			status = statusForCode(le.Code)
			s.metrics.RecordError(le.Code)
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(resp)
		return
	}

	s.metrics.RecordLabelRun("success", duration)

	resp := labelResponse{
		ShipmentID:     shipment.ID,
		LabelStatus:    string(shipment.LabelStatus),
		ParcelNumber:   shipment.ParcelNumber,
		TrackingNumber: shipment.TrackingNumber,
	}
	for _, pkg := range shipment.Packages {
		resp.Packages = append(resp.Packages, packageResult{
			Code:           pkg.Code,
			ParcelNumber:   pkg.ParcelNumber,
			TrackingNumber: pkg.TrackingNumber,
		})
	}
	json.NewEncoder(w).Encode(resp)
}

func statusForCode(code string) int {
	switch code {
	case gls.CodeValidation:
		return http.StatusUnprocessableEntity
	case gls.CodeCollision:
		return http.StatusConflict
	case gls.CodeTransport, gls.CodeProtocol:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}
