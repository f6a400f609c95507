package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand represents a request to move an order to a target
// lifecycle status. Override skips the advisory risk check on the way into
// confirmed; it has no effect on any other target.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	target   order.Status
	override bool

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to transition an order.
// The target is parsed from its string form and must name a known status.
func NewTransitionOrderCommand(orderID kernel.UUID, target string, override bool) (TransitionOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return TransitionOrderCommand{}, err
	}

	status, err := order.StatusFromString(target)
	if err != nil {
		return TransitionOrderCommand{}, err
	}

	return TransitionOrderCommand{
		orderID:  orderID,
		target:   status,
		override: override,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested lifecycle status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// Override reports whether a risk warning should be bypassed.
func (c TransitionOrderCommand) Override() bool {
	return c.override
}
