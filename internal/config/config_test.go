package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/gls/internal/config"
	"github.com/tournevent/gls/pkg/gls"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 80, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 3390, cfg.GLSPort)
	assert.Equal(t, "zebrazpl200", cfg.GLSPrinterResolution)
	assert.Equal(t, "Kd-Nr", cfg.GLSCustomerLabel)
	assert.Equal(t, "ID-Nr", cfg.GLSCustomerIDLabel)
	assert.False(t, cfg.GLSIsTest)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("GLS_SERVER", "unibox.example.test")
	t.Setenv("GLS_DEPOT_NUMBER", "46")
	t.Setenv("GLS_IS_TEST", "true")
	t.Setenv("GLS_PRINTER_RESOLUTION", "zebrazpl300")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "unibox.example.test", cfg.GLSServer)
	assert.Equal(t, "46", cfg.GLSDepotNumber)
	assert.True(t, cfg.GLSIsTest)

	carrier := cfg.Carrier()
	assert.Equal(t, "unibox.example.test", carrier.Server)
	assert.Equal(t, "46", carrier.DepotNumber)
	assert.Equal(t, gls.PrinterZebraZPL300, carrier.Printer)
	assert.True(t, carrier.IsTest)
}
