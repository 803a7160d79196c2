package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/tournevent/gls/pkg/gls"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"80"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Database
	DatabaseDSN string `envconfig:"DATABASE_DSN"`

	// GLS carrier account
	GLSServer            string `envconfig:"GLS_SERVER"`
	GLSPort              int    `envconfig:"GLS_PORT" default:"3390"`
	GLSContract          string `envconfig:"GLS_CONTRACT"`
	GLSCustomerID        string `envconfig:"GLS_CUSTOMER_ID"`
	GLSLocation          string `envconfig:"GLS_LOCATION"`
	GLSDepotNumber       string `envconfig:"GLS_DEPOT_NUMBER"`
	GLSCustomerNumber    string `envconfig:"GLS_CUSTOMER_NUMBER"`
	GLSPrinterResolution string `envconfig:"GLS_PRINTER_RESOLUTION" default:"zebrazpl200"`
	GLSIsTest            bool   `envconfig:"GLS_IS_TEST" default:"false"`
	GLSUseMock           bool   `envconfig:"GLS_USE_MOCK" default:"false"`

	// Display labels printed on the label document.
	GLSCustomerLabel   string `envconfig:"GLS_CUSTOMER_LABEL" default:"Kd-Nr"`
	GLSCustomerIDLabel string `envconfig:"GLS_CUSTOMER_ID_LABEL" default:"ID-Nr"`
	GLSConsignorLabel  string `envconfig:"GLS_CONSIGNOR_LABEL" default:"Empfanger"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"true"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://jaeger-collector.claude.svc.cluster.local:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"gls-bridge"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// Carrier builds the immutable carrier configuration consumed by the label
// pipeline.
func (c *Config) Carrier() *gls.CarrierConfig {
	return &gls.CarrierConfig{
		Server:          c.GLSServer,
		Port:            c.GLSPort,
		Contract:        c.GLSContract,
		CustomerID:      c.GLSCustomerID,
		Location:        c.GLSLocation,
		DepotNumber:     c.GLSDepotNumber,
		CustomerNumber:  c.GLSCustomerNumber,
		Printer:         gls.PrinterResolution(c.GLSPrinterResolution),
		IsTest:          c.GLSIsTest,
		CustomerLabel:   c.GLSCustomerLabel,
		CustomerIDLabel: c.GLSCustomerIDLabel,
		ConsignorLabel:  c.GLSConsignorLabel,
	}
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("gls.test_mode", c.GLSIsTest),
		attribute.Bool("gls.mock", c.GLSUseMock),
		attribute.String("gls.depot", c.GLSDepotNumber),
	}
}
