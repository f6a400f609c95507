package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/risk"
	"storefront/internal/core/ports"
)

// ErrRiskWarning marks a transition into confirmed that was withheld
// because the customer's delivery history classified as risky.
var ErrRiskWarning = errors.New("customer risk warning")

// RiskWarningError carries the assessment behind a withheld confirmation.
// The transition is not applied; resubmitting with override set applies it.
type RiskWarningError struct {
	Phone        string
	Tier         risk.Tier
	SuccessRatio float64
}

func (e *RiskWarningError) Error() string {
	return fmt.Sprintf("%s: %s is %s (%.1f%% success)", ErrRiskWarning, e.Phone, e.Tier, e.SuccessRatio)
}

func (e *RiskWarningError) Unwrap() error {
	return ErrRiskWarning
}

// TransitionOrderCommandHandler moves an order through its lifecycle.
//
// A transition into confirmed consults the external risk history for the
// customer's phone first. A risky classification withholds the transition
// with a RiskWarningError unless the command carries the override flag; an
// unreachable or failing lookup never blocks, it degrades to inconclusive.
//
// Example:
//
//	cmd, _ := NewTransitionOrderCommand(orderID, "confirmed", false)
//	err := handler.Handle(ctx, cmd)
//	var warning *RiskWarningError
//	switch {
//	case errors.As(err, &warning):
//	    // surface the warning, retry with override after operator review
//	case err != nil:
//	    return err
//	}
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	riskClient ports.RiskClient
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory, riskClient ports.RiskClient,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		riskClient: riskClient,
	}
}

// Handle processes the transition command.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if cmd.Target() == order.StatusConfirmed && !cmd.Override() {
		if warning := h.assessCustomer(ctx, aggregate); warning != nil {
			return warning
		}
	}

	if err = aggregate.TransitionTo(cmd.Target(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// assessCustomer runs the advisory risk check. It returns a non-nil error
// only for a risky classification; lookup failures are logged and ignored.
func (h TransitionOrderCommandHandler) assessCustomer(ctx context.Context, aggregate *order.Order) error {
	phone := aggregate.Customer().Phone().String()

	history, err := h.riskClient.Lookup(ctx, phone)
	if err != nil {
		slog.Warn("risk lookup failed, proceeding without assessment",
			"order_id", aggregate.ID().String(), "error", err)
		return nil
	}

	assessment := risk.Assess(phone, history)
	if assessment.Tier != risk.TierRisky {
		return nil
	}

	return &RiskWarningError{
		Phone:        phone,
		Tier:         assessment.Tier,
		SuccessRatio: assessment.SuccessRatio,
	}
}
