package gls_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/gls/pkg/gls"
)

func testCarrierConfig() *gls.CarrierConfig {
	return &gls.CarrierConfig{
		Server:          "unibox.example.test",
		Port:            3390,
		Contract:        "2760178000",
		CustomerID:      "276a165",
		Location:        "Essen",
		DepotNumber:     "46",
		CustomerNumber:  "15082",
		Printer:         gls.PrinterZebraZPL200,
		CustomerLabel:   "Kd-Nr",
		CustomerIDLabel: "ID-Nr",
		ConsignorLabel:  "Empfanger",
	}
}

func testShipment() *gls.Shipment {
	return &gls.Shipment{
		ID:            "SHP-1001",
		State:         gls.StatePacked,
		CarrierMethod: gls.CarrierMethod,
		ServiceType:   gls.ServiceEuroBusinessParcel,
		DepotNumber:   "46",
		EffectiveDate: time.Date(2015, 6, 12, 0, 0, 0, 0, time.UTC),
		CustomerName:  "Max Mustermann",
		CustomerID:    "800018406",
		CompanyName:   "Openwerk GmbH",
		DeliveryAddress: gls.Address{
			Name:        "Max Mustermann",
			Street:      "Musterstr. 5",
			City:        "München",
			Zip:         "80331",
			CountryCode: "DE",
		},
		WarehouseAddr: gls.Address{
			Name:        "Lager Süd",
			Street:      "Werkstr. 1",
			City:        "Essen",
			Zip:         "45127",
			CountryCode: "DE",
		},
		Packages: []*gls.Package{
			{ID: "PKG-1", ShipmentID: "SHP-1001", Code: "1", Weight: 4.5, ParcelNumber: "461012345678"},
			{ID: "PKG-2", ShipmentID: "SHP-1001", Code: "2", Weight: 2.25},
		},
	}
}

func TestBuildRequest_FieldMapping(t *testing.T) {
	shipment := testShipment()
	cfg := testCarrierConfig()

	req, err := gls.BuildRequest(shipment, shipment.Packages[0], cfg)
	require.NoError(t, err)

	assert.Equal(t, "DE", req.ConsigneeCountry)
	assert.Equal(t, "80331", req.ConsigneeZip)
	assert.Equal(t, "Max Mustermann", req.ConsigneeName)
	assert.Equal(t, "Musterstr. 5", req.ConsigneeStreet)
	assert.Equal(t, "München", req.ConsigneePlace)

	assert.Equal(t, "Kd-Nr", req.CustomerNumberLabel)
	assert.Equal(t, "15082", req.CustomerNumber)
	assert.Equal(t, "ID-Nr", req.IDType)
	assert.Equal(t, "800018406", req.IDValue)

	assert.Equal(t, "Openwerk GmbH", req.ConsignorName)
	assert.Equal(t, "Lager Süd", req.ConsignorName2)
	assert.Equal(t, "DE", req.ConsignorCountry)
	assert.Equal(t, "45127", req.ConsignorZip)
	assert.Equal(t, "Essen", req.ConsignorPlace)
	assert.Equal(t, "Empfanger", req.ConsignorLabel)

	assert.Equal(t, shipment.EffectiveDate, req.ShippingDate)
	assert.Equal(t, "1", req.ParcelSeq)
	assert.Equal(t, 4.5, req.ParcelWeight)
	assert.Equal(t, "461012345678", req.ParcelNumber)
	assert.Equal(t, 2, req.Quantity)

	assert.Equal(t, "2760178000", req.Contract)
	assert.Equal(t, "276a165", req.CustomerID)
	assert.Equal(t, "Essen", req.Location)
	assert.Equal(t, "zebrazpl200", req.Printer)
}

func TestBuildRequest_DoesNotMutateShipment(t *testing.T) {
	shipment := testShipment()
	before := *shipment

	_, err := gls.BuildRequest(shipment, shipment.Packages[1], testCarrierConfig())
	require.NoError(t, err)

	assert.Equal(t, before.TrackingNumber, shipment.TrackingNumber)
	assert.Equal(t, before.ParcelNumber, shipment.ParcelNumber)
	assert.Equal(t, before.State, shipment.State)
}

func TestBuildRequest_MissingDeliveryZip(t *testing.T) {
	shipment := testShipment()
	shipment.DeliveryAddress.Zip = ""

	_, err := gls.BuildRequest(shipment, shipment.Packages[0], testCarrierConfig())

	assert.ErrorIs(t, err, gls.ErrMissingAddressData)
}

func TestBuildRequest_MissingWarehouseCountry(t *testing.T) {
	shipment := testShipment()
	shipment.WarehouseAddr.CountryCode = ""

	_, err := gls.BuildRequest(shipment, shipment.Packages[0], testCarrierConfig())

	assert.ErrorIs(t, err, gls.ErrMissingAddressData)
}

func TestBuildRequest_ImplicitUnitUsesShipmentWeight(t *testing.T) {
	shipment := testShipment()
	shipment.Packages = nil
	shipment.Weight = 7.8

	unit := shipment.Units()[0]
	req, err := gls.BuildRequest(shipment, unit, testCarrierConfig())
	require.NoError(t, err)

	assert.Equal(t, 7.8, req.ParcelWeight)
	assert.Equal(t, 1, req.Quantity)
}
