package commands

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// RefreshCourierStatusCommandHandler re-polls the carrier for a dispatched
// order and stores the returned status. Only the cached courier status is
// written; the order lifecycle status is never moved by a poll.
type RefreshCourierStatusCommandHandler struct {
	uowFactory    OrderUoWFactory
	courierClient ports.CourierClient
}

// NewRefreshCourierStatusCommandHandler creates a handler for status polling.
func NewRefreshCourierStatusCommandHandler(
	uowFactory OrderUoWFactory, courierClient ports.CourierClient,
) RefreshCourierStatusCommandHandler {
	return RefreshCourierStatusCommandHandler{
		uowFactory:    uowFactory,
		courierClient: courierClient,
	}
}

// Handle processes the refresh command.
func (h RefreshCourierStatusCommandHandler) Handle(ctx context.Context, cmd RefreshCourierStatusCommand) error {
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

	if !aggregate.IsDispatched() {
		return fmt.Errorf("%w: no consignment to poll", order.ErrNotDispatchEligible)
	}

	status, err := h.courierClient.GetConsignmentStatus(ctx, aggregate.ConsignmentID())
	if err != nil {
		return err
	}

	if err = aggregate.UpdateCourierStatus(status, time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
