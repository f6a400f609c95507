package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrRefreshCourierStatusCommandIsNotConstructed = errors.New(
	"RefreshCourierStatusCommand must be created via NewRefreshCourierStatusCommand constructor",
)

// RefreshCourierStatusCommand represents a request to re-poll the carrier
// for the current delivery status of a dispatched order.
type RefreshCourierStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRefreshCourierStatusCommand creates a command to refresh courier status.
func NewRefreshCourierStatusCommand(orderID kernel.UUID) (RefreshCourierStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RefreshCourierStatusCommand{}, err
	}

	return RefreshCourierStatusCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RefreshCourierStatusCommand) Validate() error {
	return c.guard.Validate(ErrRefreshCourierStatusCommandIsNotConstructed)
}

// OrderID returns the order whose courier status should be refreshed.
func (c RefreshCourierStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}
