package gls

import (
	"errors"
	"fmt"
)

// Sentinel errors for the label pipeline.
var (
	// ErrShipmentNotFound indicates the shipment id does not exist in the
	// store.
	ErrShipmentNotFound = errors.New("shipment not found")

	// ErrInvalidState indicates the shipment is not in a labelable state.
	ErrInvalidState = errors.New("shipment not in a labelable state")

	// ErrWrongCarrier indicates the shipment's carrier method is not GLS.
	ErrWrongCarrier = errors.New("shipment carrier is not GLS")

	// ErrInvalidServiceType indicates a service type outside the product table.
	ErrInvalidServiceType = errors.New("invalid service type")

	// ErrMissingAddressData indicates an address without country or zip.
	ErrMissingAddressData = errors.New("address missing country or zip")

	// ErrMissingTrackingNumber indicates the carrier responded without the
	// tracking number field. The carrier may have issued a physical label,
	// so this is never retried automatically.
	ErrMissingTrackingNumber = errors.New("carrier response missing tracking number")

	// ErrParcelNumberTaken indicates the storage uniqueness constraint
	// rejected a freshly drawn parcel number. Recoverable with a new draw.
	ErrParcelNumberTaken = errors.New("parcel number already taken")

	// ErrParcelNumberExhausted indicates repeated collisions exhausted the
	// retry budget.
	ErrParcelNumberExhausted = errors.New("parcel number generation exhausted")

	// ErrInconsistentState indicates local persistence failed after the
	// carrier call succeeded: the remote side believes a label was issued
	// but local state does not record it.
	ErrInconsistentState = errors.New("local state inconsistent with carrier")
)

// LabelError carries the failing unit and the unlabeled remainder of a
// partially processed shipment, so a caller can report exactly which
// packages a retry will reprocess.
type LabelError struct {
	Code      string
	Message   string
	Unit      string   // package code or shipment id of the failing unit
	Remaining []string // unit codes not yet attempted, in sequence order
	Cause     error
}

func (e *LabelError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("gls %s: %s (unit %s): %v", e.Code, e.Message, e.Unit, e.Cause)
	}
	return fmt.Sprintf("gls %s: %s (unit %s)", e.Code, e.Message, e.Unit)
}

func (e *LabelError) Unwrap() error {
	return e.Cause
}

// Is matches LabelErrors by code.
func (e *LabelError) Is(target error) bool {
	t, ok := target.(*LabelError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func newLabelError(code, message, unit string, cause error) *LabelError {
	return &LabelError{Code: code, Message: message, Unit: unit, Cause: cause}
}

// Error codes attached to LabelError.
const (
	CodeValidation  = "validation"
	CodeCollision   = "collision"
	CodeProtocol    = "protocol"
	CodeTransport   = "transport"
	CodePersistence = "persistence"
)

// IsRetryable reports whether retrying the operation can succeed without
// operator intervention. Only parcel-number collisions qualify; transport
// retry policy belongs to the caller, and protocol or persistence failures
// after a carrier call need manual reconciliation.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrParcelNumberTaken)
}
