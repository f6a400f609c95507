package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
)

// DispatchOrderCommandHandler books a carrier consignment for an order and
// advances it to shipped.
//
// Idempotency is enforced on both sides: the aggregate rejects a second
// dispatch with ErrAlreadyDispatched before any carrier call is made, and
// the sanitized invoice reference derived from the order number acts as the
// carrier-side key when an unknown-outcome attempt is retried.
//
// Example:
//
//	cmd, _ := NewDispatchOrderCommand(orderID)
//	err := handler.Handle(ctx, cmd)
//	var rejected *ports.DispatchRejectedError
//	switch {
//	case errors.As(err, &rejected):
//	    log.Printf("carrier refused: %s", rejected.Reason)
//	case errors.Is(err, ports.ErrDispatchOutcomeUnknown):
//	    log.Println("outcome unknown, safe to retry")
//	case err != nil:
//	    return err
//	}
type DispatchOrderCommandHandler struct {
	uowFactory    OrderUoWFactory
	courierClient ports.CourierClient
	builder       services.ConsignmentBuilder
}

// NewDispatchOrderCommandHandler creates a handler for order dispatch.
func NewDispatchOrderCommandHandler(
	uowFactory OrderUoWFactory, courierClient ports.CourierClient,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory:    uowFactory,
		courierClient: courierClient,
		builder:       services.NewConsignmentBuilder(),
	}
}

// Handle processes the dispatch command. A carrier rejection or an unknown
// outcome leaves the order untouched.
func (h DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) error {
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

	request, err := h.builder.Build(aggregate)
	if err != nil {
		return err
	}

	consignment, err := h.courierClient.CreateConsignment(ctx, request)
	if err != nil {
		return err
	}

	if err = aggregate.MarkDispatched(
		consignment.ConsignmentID, consignment.TrackingCode, consignment.Status,
		time.Now().UTC(),
	); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
