package ports

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/domain/services"
)

// ErrDispatchOutcomeUnknown marks a booking attempt whose result could not
// be determined: the request may or may not have reached the carrier.
// Callers must not flip any order state on this error; a later retry with
// the same invoice reference resolves the ambiguity on the carrier side.
var ErrDispatchOutcomeUnknown = errors.New("dispatch outcome unknown")

// DispatchRejectedError carries the carrier's rejection of a booking.
// The reason is the carrier's message verbatim so operators can act on it.
type DispatchRejectedError struct {
	Reason string
}

func (e *DispatchRejectedError) Error() string {
	return fmt.Sprintf("dispatch rejected by carrier: %s", e.Reason)
}

// Consignment is the carrier's acknowledgement of a booked parcel.
type Consignment struct {
	ConsignmentID string
	TrackingCode  string
	Status        string
}

// CourierBalance is the merchant's standing with the carrier: cash
// collected on our behalf that has not yet been remitted.
type CourierBalance struct {
	Available int64
	Pending   int64
	Currency  string
}

// CourierClient defines the contract with the external carrier API.
type CourierClient interface {
	// CreateConsignment books a parcel with the carrier.
	// Returns a *DispatchRejectedError when the carrier refuses the
	// booking and ErrDispatchOutcomeUnknown when the attempt timed out
	// or failed before a response was read.
	CreateConsignment(ctx context.Context, req services.ConsignmentRequest) (Consignment, error)

	// GetConsignmentStatus fetches the carrier's current status for a
	// previously booked parcel.
	GetConsignmentStatus(ctx context.Context, consignmentID string) (string, error)

	// GetBalance fetches the merchant's cash-on-delivery balance held by
	// the carrier.
	GetBalance(ctx context.Context) (CourierBalance, error)
}
