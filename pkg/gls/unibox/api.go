// Package unibox provides the client capability for the GLS Unibox label
// interface: a request/response text protocol carrying flat key/value
// records over a raw TCP session.
package unibox

import (
	"context"
	"time"
)

// APIClient defines the single operation the Unibox interface exposes.
// This abstraction allows for mock implementations during testing and the
// TCP implementation in production.
type APIClient interface {
	// CreateLabel submits a label request and returns the raw response
	// record as received from the server.
	CreateLabel(ctx context.Context, req *LabelRequest) ([]byte, error)
}

// Field tags of the Unibox interface description. The response echoes
// request fields and adds carrier-assigned ones; only the tracking number
// tag is interpreted by this module, everything else passes through as
// template context.
const (
	KeySoftwareName    = "T050"
	KeySoftwareVersion = "T051"

	KeyConsigneeCountry = "T100"
	KeyConsigneeZip     = "T110"
	KeyShippingDate     = "T540"

	KeyConsignorName           = "T800"
	KeyConsignorName2          = "T801"
	KeyConsignorStreet         = "T802"
	KeyConsignorCountry        = "T803"
	KeyConsignorZip            = "T804"
	KeyConsignorPlace          = "T805"
	KeyConsignorLabel          = "T806"
	KeyConsignorCustomerNumber = "T807"

	KeyConsigneeName   = "T860"
	KeyConsigneeName2  = "T861"
	KeyConsigneeStreet = "T862"
	KeyConsigneePlace  = "T863"

	KeyContract   = "T8700"
	KeyCustomerID = "T8701"
	KeyParcelSeq  = "T8702"
	KeyLocation   = "T8703"

	KeyPrinter = "T8744"

	KeyParcelWeight = "T8904"
	KeyParcelNumber = "T8905"

	// KeyTrackingNumber is the carrier-assigned tracking number in the
	// response. Its absence is a protocol fault.
	KeyTrackingNumber = "T8913"

	KeyCustomerNumberLabel = "T8914"
	KeyCustomerNumber      = "T8915"
	KeyIDType              = "T8916"
	KeyIDValue             = "T8917"

	KeyQuantity = "T8973"
)

// dateFormat is the wire format for shipping dates.
const dateFormat = "02.01.2006"

// LabelRequest is a Unibox label request. Field order on the wire is fixed
// by Fields().
type LabelRequest struct {
	SoftwareName    string
	SoftwareVersion string

	ConsigneeCountry string
	ConsigneeZip     string
	ConsigneeName    string
	ConsigneeName2   string
	ConsigneeStreet  string
	ConsigneePlace   string

	CustomerNumberLabel string
	CustomerNumber      string
	IDType              string
	IDValue             string

	ConsignorName           string
	ConsignorName2          string
	ConsignorStreet         string
	ConsignorCountry        string
	ConsignorZip            string
	ConsignorPlace          string
	ConsignorLabel          string
	ConsignorCustomerNumber string

	ShippingDate time.Time

	ParcelSeq    string
	ParcelWeight float64
	ParcelNumber string
	Quantity     int

	Contract   string
	CustomerID string
	Location   string
	Printer    string
}

// Field is one key/value pair of the wire record.
type Field struct {
	Key   string
	Value string
}
