package order

import (
	"errors"
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status represents the order lifecycle state.
//
// The happy path runs Pending -> Confirmed -> Processing -> Shipped ->
// Delivered, with Cancelled and Refunded reachable from any non-terminal
// state. Intermediate steps may be skipped: the table is permissive by
// design, only the terminal states refuse further transitions.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending is the initial status at checkout submission.
	StatusPending

	// StatusConfirmed indicates the order passed (or overrode) risk review.
	StatusConfirmed

	// StatusProcessing indicates the order is being picked and packed.
	StatusProcessing

	// StatusShipped indicates a courier consignment exists for the order.
	StatusShipped

	// StatusDelivered indicates the courier reported successful delivery.
	StatusDelivered

	// StatusCancelled is terminal; no further transitions are accepted.
	StatusCancelled

	// StatusRefunded is terminal; no further transitions are accepted.
	StatusRefunded
)

// ErrTerminalState is the sentinel wrapped by TerminalStateError.
var ErrTerminalState = errors.New("order is in a terminal state")

// TerminalStateError reports a transition attempt on a cancelled or
// refunded order.
type TerminalStateError struct {
	Current Status
	Target  Status
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("order is in a terminal state: cannot move from %s to %s", e.Current, e.Target)
}

func (e *TerminalStateError) Unwrap() error {
	return ErrTerminalState
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "unknown",
		StatusPending:    "pending",
		StatusConfirmed:  "confirmed",
		StatusProcessing: "processing",
		StatusShipped:    "shipped",
		StatusDelivered:  "delivered",
		StatusCancelled:  "cancelled",
		StatusRefunded:   "refunded",
	}
}

// StatusFromString parses the persisted/API string form of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("order status",
		fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusRefunded {
		return errs.NewValueIsInvalidErrorWithCause("order status",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String implements fmt.Stringer. Safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusRefunded
}

// IsDispatchEligible reports whether an order in this status may be handed
// to a courier.
func (s Status) IsDispatchEligible() bool {
	return s == StatusConfirmed || s == StatusProcessing
}

// TransitionTo validates a move to target and returns the new status.
//
// Returns a TerminalStateError when the current status is terminal, and a
// validation error for an undefined target. Everything else is allowed.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return StatusUnknown, err
	}
	if s.IsTerminal() {
		return StatusUnknown, &TerminalStateError{Current: s, Target: target}
	}
	return target, nil
}
