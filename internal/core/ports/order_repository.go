// Package ports defines the contracts between the application core and
// infrastructure: repository interfaces for persistence and client
// interfaces for the external carrier, risk, and payment services.
// These interfaces establish dependency inversion and testability.
package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// together with their line items.
type OrderRepository interface {
	// Add persists a new order aggregate with all of its line items.
	// The order must be valid and not already exist in the repository.
	// The order row and its item rows are written atomically.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its line items and current state.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByOrderNumber retrieves an order aggregate by its human-facing
	// order number. Order numbers are unique across the store.
	GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error)

	// GetAllDispatched retrieves every order that has been handed to the
	// carrier but has not yet reached a terminal courier status.
	// Used by the courier status refresh job.
	GetAllDispatched(ctx context.Context) ([]*order.Order, error)
}
