package queries

import (
	"errors"

	"storefront/internal/pkg/guard"
)

var ErrCourierBalanceQueryIsNotConstructed = errors.New(
	"CourierBalanceQuery must be created via NewCourierBalanceQuery constructor",
)

// CourierBalanceQuery retrieves the merchant's cash-on-delivery balance
// held by the carrier. This is a parameterless passthrough query.
type CourierBalanceQuery struct {
	guard guard.ConstructorGuard
}

// NewCourierBalanceQuery creates a balance query.
func NewCourierBalanceQuery() CourierBalanceQuery {
	return CourierBalanceQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q CourierBalanceQuery) Validate() error {
	return q.guard.Validate(ErrCourierBalanceQueryIsNotConstructed)
}

// CourierBalanceQueryResponse represents the carrier balance read model.
type CourierBalanceQueryResponse struct {
	Available int64
	Pending   int64
	Currency  string
}
