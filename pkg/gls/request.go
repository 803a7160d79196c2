package gls

import (
	"fmt"

	"github.com/tournevent/gls/pkg/gls/unibox"
)

// Software identification sent on every request.
const (
	softwareName    = "Go"
	softwareVersion = "1.24"
)

// BuildRequest converts a shipment, one of its packages and the carrier
// configuration into a Unibox label request. It is a pure field copy:
// nothing is mutated and no external call is made.
//
// The carrier protocol requires country and zip on both address blocks;
// anything less fails with ErrMissingAddressData.
func BuildRequest(shipment *Shipment, pkg *Package, cfg *CarrierConfig) (*unibox.LabelRequest, error) {
	if err := checkAddress("delivery", shipment.DeliveryAddress); err != nil {
		return nil, err
	}
	if err := checkAddress("warehouse", shipment.WarehouseAddr); err != nil {
		return nil, err
	}

	consignee := shipment.DeliveryAddress
	consignor := shipment.WarehouseAddr

	req := &unibox.LabelRequest{
		SoftwareName:    softwareName,
		SoftwareVersion: softwareVersion,

		ConsigneeCountry: consignee.CountryCode,
		ConsigneeZip:     consignee.Zip,
		ConsigneeName:    consignee.Name,
		ConsigneeName2:   consignee.Name2,
		ConsigneeStreet:  consignee.Street,
		ConsigneePlace:   consignee.City,

		CustomerNumberLabel: cfg.CustomerLabel,
		CustomerNumber:      cfg.CustomerNumber,
		IDType:              cfg.CustomerIDLabel,
		IDValue:             shipment.CustomerID,

		ConsignorName:           shipment.CompanyName,
		ConsignorName2:          consignor.Name,
		ConsignorStreet:         consignor.Street,
		ConsignorCountry:        consignor.CountryCode,
		ConsignorZip:            consignor.Zip,
		ConsignorPlace:          consignor.City,
		ConsignorLabel:          cfg.ConsignorLabel,
		ConsignorCustomerNumber: cfg.CustomerNumber,

		ShippingDate: shipment.EffectiveDate,

		ParcelSeq:    pkg.Code,
		ParcelWeight: unitWeight(shipment, pkg),
		ParcelNumber: pkg.ParcelNumber,
		Quantity:     quantity(shipment),

		Contract:   cfg.Contract,
		CustomerID: cfg.CustomerID,
		Location:   cfg.Location,
		Printer:    string(cfg.Printer),
	}
	return req, nil
}

func checkAddress(which string, addr Address) error {
	if addr.CountryCode == "" || addr.Zip == "" {
		return fmt.Errorf("%w: %s address", ErrMissingAddressData, which)
	}
	return nil
}

// unitWeight is the weight of the labeled unit in kilograms: the package
// weight, or the shipment weight for the implicit single-unit case.
func unitWeight(shipment *Shipment, pkg *Package) float64 {
	if pkg.Weight > 0 {
		return pkg.Weight
	}
	return shipment.Weight
}

func quantity(shipment *Shipment) int {
	if n := len(shipment.Packages); n > 0 {
		return n
	}
	return 1
}
