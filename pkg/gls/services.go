package gls

import "fmt"

// ServiceType represents a GLS service/product tier.
type ServiceType string

const (
	ServiceEuroBusinessParcel ServiceType = "euro_business_parcel"
	ServiceCashDAC            ServiceType = "cash_service_dac"
	ServiceCashExchange       ServiceType = "cash_service_exchange"
	ServiceDeliveryAtWork     ServiceType = "delivery_at_work"
	ServiceGuaranteed24       ServiceType = "guaranteed_24"
	ServiceShopReturn         ServiceType = "shop_return"
	ServiceInterCompany       ServiceType = "intercompany"
	ServiceExpressParcel      ServiceType = "express_parcel"
	ServiceExchangeOutgoing   ServiceType = "exchange_outgoing"
	ServicePickupReturn       ServiceType = "pick_return"
)

// productCodes is the closed mapping from service type to the 2-digit
// product code embedded in the parcel number. Service types outside this
// table are invalid input.
var productCodes = map[ServiceType]string{
	ServiceEuroBusinessParcel: "10",
	ServiceCashDAC:            "71",
	ServiceCashExchange:       "72",
	ServiceDeliveryAtWork:     "74",
	ServiceGuaranteed24:       "75",
	ServiceShopReturn:         "76",
	ServiceInterCompany:       "78",
	ServiceExpressParcel:      "85",
	ServiceExchangeOutgoing:   "87",
	ServicePickupReturn:       "89",
}

// ProductCode returns the 2-digit product code for a service type.
func ProductCode(service ServiceType) (string, error) {
	code, ok := productCodes[service]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidServiceType, service)
	}
	return code, nil
}

// ServiceTypes returns all known service types.
func ServiceTypes() []ServiceType {
	types := make([]ServiceType, 0, len(productCodes))
	for st := range productCodes {
		types = append(types, st)
	}
	return types
}

// PrinterResolution selects the label printer language/density variant.
type PrinterResolution string

const (
	PrinterZebraZPL200 PrinterResolution = "zebrazpl200"
	PrinterZebraZPL300 PrinterResolution = "zebrazpl300"
)
