package queries

import (
	"context"

	"storefront/internal/core/ports"
)

// CourierBalanceQueryHandler fetches the merchant balance from the carrier.
type CourierBalanceQueryHandler struct {
	courierClient ports.CourierClient
}

// NewCourierBalanceQueryHandler creates a handler for balance queries.
func NewCourierBalanceQueryHandler(courierClient ports.CourierClient) CourierBalanceQueryHandler {
	return CourierBalanceQueryHandler{courierClient: courierClient}
}

// Handle executes the balance query.
func (h CourierBalanceQueryHandler) Handle(
	ctx context.Context, query CourierBalanceQuery,
) (CourierBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CourierBalanceQueryResponse{}, err
	}

	balance, err := h.courierClient.GetBalance(ctx)
	if err != nil {
		return CourierBalanceQueryResponse{}, err
	}

	return CourierBalanceQueryResponse{
		Available: balance.Available,
		Pending:   balance.Pending,
		Currency:  balance.Currency,
	}, nil
}
