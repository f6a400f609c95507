package ports

import (
	"context"

	"storefront/internal/core/domain/model/risk"
)

// RiskClient defines the contract with the external courier-history
// aggregation service used for customer risk lookups.
type RiskClient interface {
	// Lookup fetches the per-courier delivery history recorded for a
	// phone number. A phone with no history returns an empty slice.
	Lookup(ctx context.Context, phone string) ([]risk.CourierHistory, error)
}
