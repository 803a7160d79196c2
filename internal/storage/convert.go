package storage

import (
	"github.com/tournevent/gls/pkg/gls"
)

func shipmentToRecord(s *gls.Shipment) *ShipmentRecord {
	return &ShipmentRecord{
		ID:            s.ID,
		State:         string(s.State),
		CarrierMethod: s.CarrierMethod,
		ServiceType:   string(s.ServiceType),
		DepotNumber:   s.DepotNumber,
		EffectiveDate: s.EffectiveDate,

		CustomerName: s.CustomerName,
		CustomerID:   s.CustomerID,
		CustomerCode: s.CustomerCode,
		CompanyName:  s.CompanyName,

		DeliveryName:    s.DeliveryAddress.Name,
		DeliveryName2:   s.DeliveryAddress.Name2,
		DeliveryStreet:  s.DeliveryAddress.Street,
		DeliveryCity:    s.DeliveryAddress.City,
		DeliveryZip:     s.DeliveryAddress.Zip,
		DeliveryCountry: s.DeliveryAddress.CountryCode,

		WarehouseName:    s.WarehouseAddr.Name,
		WarehouseName2:   s.WarehouseAddr.Name2,
		WarehouseStreet:  s.WarehouseAddr.Street,
		WarehouseCity:    s.WarehouseAddr.City,
		WarehouseZip:     s.WarehouseAddr.Zip,
		WarehouseCountry: s.WarehouseAddr.CountryCode,

		Weight:         s.Weight,
		ParcelNumber:   nullable(s.ParcelNumber),
		TrackingNumber: s.TrackingNumber,
		LabelStatus:    string(s.LabelStatus),
	}
}

func recordToShipment(rec *ShipmentRecord) *gls.Shipment {
	s := &gls.Shipment{
		ID:            rec.ID,
		State:         gls.ShipmentState(rec.State),
		CarrierMethod: rec.CarrierMethod,
		ServiceType:   gls.ServiceType(rec.ServiceType),
		DepotNumber:   rec.DepotNumber,
		EffectiveDate: rec.EffectiveDate,

		CustomerName: rec.CustomerName,
		CustomerID:   rec.CustomerID,
		CustomerCode: rec.CustomerCode,
		CompanyName:  rec.CompanyName,

		DeliveryAddress: gls.Address{
			Name:        rec.DeliveryName,
			Name2:       rec.DeliveryName2,
			Street:      rec.DeliveryStreet,
			City:        rec.DeliveryCity,
			Zip:         rec.DeliveryZip,
			CountryCode: rec.DeliveryCountry,
		},
		WarehouseAddr: gls.Address{
			Name:        rec.WarehouseName,
			Name2:       rec.WarehouseName2,
			Street:      rec.WarehouseStreet,
			City:        rec.WarehouseCity,
			Zip:         rec.WarehouseZip,
			CountryCode: rec.WarehouseCountry,
		},

		Weight:         rec.Weight,
		ParcelNumber:   deref(rec.ParcelNumber),
		TrackingNumber: rec.TrackingNumber,
		LabelStatus:    gls.LabelStatus(rec.LabelStatus),
	}

	if len(rec.Packages) == 0 {
		return s
	}
	s.Packages = make([]*gls.Package, len(rec.Packages))
	for i, p := range rec.Packages {
		s.Packages[i] = &gls.Package{
			ID:             p.ID,
			ShipmentID:     p.ShipmentID,
			Code:           p.Code,
			Weight:         p.Weight,
			ParcelNumber:   deref(p.ParcelNumber),
			TrackingNumber: p.TrackingNumber,
		}
	}
	return s
}

func packageToRecord(p *gls.Package) *PackageRecord {
	return &PackageRecord{
		ID:             p.ID,
		ShipmentID:     p.ShipmentID,
		Code:           p.Code,
		Weight:         p.Weight,
		ParcelNumber:   nullable(p.ParcelNumber),
		TrackingNumber: p.TrackingNumber,
	}
}

// nullable keeps empty strings out of the unique parcel-number index.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
