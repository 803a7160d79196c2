package unibox

import (
	"fmt"
	"strconv"
	"strings"
)

// Wire framing of a Unibox record: STX, key/value pairs joined with GS,
// ETX. Keys and values are separated by a colon; values are Latin-1 text.
const (
	stx = '\x02'
	etx = '\x03'
	gs  = '\x1d'
)

// Fields returns the request's key/value pairs in wire order. Empty values
// are omitted from the record.
func (r *LabelRequest) Fields() []Field {
	fields := []Field{
		{KeySoftwareName, r.SoftwareName},
		{KeySoftwareVersion, r.SoftwareVersion},
		{KeyConsigneeCountry, r.ConsigneeCountry},
		{KeyConsigneeZip, r.ConsigneeZip},
		{KeyConsigneeName, r.ConsigneeName},
		{KeyConsigneeName2, r.ConsigneeName2},
		{KeyConsigneeStreet, r.ConsigneeStreet},
		{KeyConsigneePlace, r.ConsigneePlace},
		{KeyCustomerNumberLabel, r.CustomerNumberLabel},
		{KeyCustomerNumber, r.CustomerNumber},
		{KeyIDType, r.IDType},
		{KeyIDValue, r.IDValue},
		{KeyConsignorName, r.ConsignorName},
		{KeyConsignorName2, r.ConsignorName2},
		{KeyConsignorStreet, r.ConsignorStreet},
		{KeyConsignorCountry, r.ConsignorCountry},
		{KeyConsignorZip, r.ConsignorZip},
		{KeyConsignorPlace, r.ConsignorPlace},
		{KeyConsignorLabel, r.ConsignorLabel},
		{KeyConsignorCustomerNumber, r.ConsignorCustomerNumber},
		{KeyParcelSeq, r.ParcelSeq},
		{KeyParcelWeight, formatWeight(r.ParcelWeight)},
		{KeyParcelNumber, r.ParcelNumber},
		{KeyQuantity, strconv.Itoa(r.Quantity)},
		{KeyContract, r.Contract},
		{KeyCustomerID, r.CustomerID},
		{KeyLocation, r.Location},
		{KeyPrinter, r.Printer},
	}
	if !r.ShippingDate.IsZero() {
		fields = append(fields, Field{KeyShippingDate, r.ShippingDate.Format(dateFormat)})
	}

	out := fields[:0]
	for _, f := range fields {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}

// Encode renders the request as a framed wire record.
func (r *LabelRequest) Encode() []byte {
	return encodeFields(r.Fields())
}

func encodeFields(fields []Field) []byte {
	pairs := make([]string, len(fields))
	for i, f := range fields {
		pairs[i] = f.Key + ":" + f.Value
	}

	var sb strings.Builder
	sb.WriteByte(stx)
	sb.WriteString(strings.Join(pairs, string(rune(gs))))
	sb.WriteByte(etx)
	return []byte(sb.String())
}

func formatWeight(kg float64) string {
	if kg == 0 {
		return ""
	}
	return strconv.FormatFloat(kg, 'f', 2, 64)
}

// Response is a decoded Unibox response record.
type Response struct {
	// Values holds every key/value pair of the record. Keys other than
	// KeyTrackingNumber are opaque to this module.
	Values map[string]string
}

// ParseResponse decodes a raw response record. The decode is pure: framing
// bytes are tolerated but not required, pairs without a colon are rejected.
func ParseResponse(raw []byte) (*Response, error) {
	body := strings.Trim(string(raw), string([]byte{stx, etx, '\r', '\n'}))
	if body == "" {
		return nil, fmt.Errorf("empty response record")
	}

	values := make(map[string]string)
	for _, pair := range strings.Split(body, string(rune(gs))) {
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("malformed response field %q", pair)
		}
		values[key] = value
	}
	return &Response{Values: values}, nil
}

// TrackingNumber returns the carrier-assigned tracking number, or false
// when the field is absent or blank.
func (r *Response) TrackingNumber() (string, bool) {
	v, ok := r.Values[KeyTrackingNumber]
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
