package gls

import (
	"time"
)

// CarrierMethod is the cost/label method this module implements. Shipments
// bound to any other carrier method are rejected before a parcel number is
// generated.
const CarrierMethod = "gls"

// ShipmentState is the lifecycle state of a shipment in the surrounding
// order-management system. Labeling is only allowed in packed or done.
type ShipmentState string

const (
	StateDraft     ShipmentState = "draft"
	StateWaiting   ShipmentState = "waiting"
	StateAssigned  ShipmentState = "assigned"
	StatePacked    ShipmentState = "packed"
	StateDone      ShipmentState = "done"
	StateCancelled ShipmentState = "cancelled"
)

// LabelStatus tracks how far label generation has progressed for a shipment.
type LabelStatus string

const (
	LabelNotLabeled LabelStatus = "not_labeled"
	LabelRequested  LabelStatus = "requested"
	LabelLabeled    LabelStatus = "labeled"
	LabelFailed     LabelStatus = "failed"
)

// Address is a consignor or consignee address block. CountryCode and Zip are
// mandatory on the wire; everything else is copied through as-is.
type Address struct {
	Name        string
	Name2       string
	Street      string
	City        string
	Zip         string
	CountryCode string // ISO 3166-1 alpha-2, e.g. "DE"
}

// Package is one physical parcel inside a shipment. Code doubles as the
// parcel sequence identifier sent to the carrier and as part of the
// attachment name.
type Package struct {
	ID             string
	ShipmentID     string
	Code           string
	Weight         float64 // kilograms
	ParcelNumber   string
	TrackingNumber string
}

// Labeled reports whether this package already carries a tracking number.
func (p *Package) Labeled() bool {
	return p.TrackingNumber != ""
}

// Shipment is the outbound shipment as the label core sees it: the handful
// of fields read from the order-management aggregate, not the aggregate
// itself.
type Shipment struct {
	ID            string
	State         ShipmentState
	CarrierMethod string
	ServiceType   ServiceType
	DepotNumber   string // 2 digits
	EffectiveDate time.Time

	CustomerName string
	CustomerID   string
	CustomerCode string

	DeliveryAddress Address
	WarehouseAddr   Address
	CompanyName     string

	Weight   float64 // kilograms, used when the shipment has no packages
	Packages []*Package

	ParcelNumber   string
	TrackingNumber string
	LabelStatus    LabelStatus
}

// Units returns the labelable units of the shipment in fixed sequence
// order. A shipment with no explicit packages is a single implicit unit
// carrying the shipment's own weight.
func (s *Shipment) Units() []*Package {
	if len(s.Packages) > 0 {
		return s.Packages
	}
	return []*Package{{
		ID:             s.ID,
		ShipmentID:     s.ID,
		Weight:         s.Weight,
		ParcelNumber:   s.ParcelNumber,
		TrackingNumber: s.TrackingNumber,
	}}
}

// CarrierConfig is the per-carrier account configuration. Immutable during a
// single label run.
type CarrierConfig struct {
	Server         string
	Port           int
	Contract       string
	CustomerID     string
	Location       string
	DepotNumber    string
	CustomerNumber string
	Printer        PrinterResolution
	IsTest         bool

	// Display labels printed on the label document.
	CustomerLabel   string
	CustomerIDLabel string
	ConsignorLabel  string
}
