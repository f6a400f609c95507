package queries

import (
	"errors"

	"storefront/internal/core/domain/model/pricing"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrPriceQuoteQueryIsNotConstructed = errors.New(
	"PriceQuoteQuery must be created via NewPriceQuoteQuery constructor",
)

// PriceQuoteQuery prices a cart for display during checkout. The quote is
// advisory: order placement re-prices the cart server-side, so a stale quote
// can never fix the charged amount.
type PriceQuoteQuery struct {
	items               []pricing.CartItem
	zoneName            string
	couponCode          string
	waiveDeliveryCharge bool
	partialPayment      bool

	guard guard.ConstructorGuard
}

// NewPriceQuoteQuery creates a quote query for the given cart.
// couponCode is optional; an empty string prices without a coupon.
func NewPriceQuoteQuery(
	items []pricing.CartItem, zoneName, couponCode string, waiveDeliveryCharge, partialPayment bool,
) (PriceQuoteQuery, error) {
	if len(items) == 0 {
		return PriceQuoteQuery{}, errs.NewValueIsRequiredError("items")
	}
	if zoneName == "" {
		return PriceQuoteQuery{}, errs.NewValueIsRequiredError("zoneName")
	}

	return PriceQuoteQuery{
		items:               items,
		zoneName:            zoneName,
		couponCode:          couponCode,
		waiveDeliveryCharge: waiveDeliveryCharge,
		partialPayment:      partialPayment,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q PriceQuoteQuery) Validate() error {
	return q.guard.Validate(ErrPriceQuoteQueryIsNotConstructed)
}

// Items returns the cart lines to price.
func (q PriceQuoteQuery) Items() []pricing.CartItem {
	return q.items
}

// ZoneName returns the delivery zone name.
func (q PriceQuoteQuery) ZoneName() string {
	return q.zoneName
}

// CouponCode returns the coupon code, empty when none was entered.
func (q PriceQuoteQuery) CouponCode() string {
	return q.couponCode
}

// WaiveDeliveryCharge reports whether the free-delivery threshold applies.
func (q PriceQuoteQuery) WaiveDeliveryCharge() bool {
	return q.waiveDeliveryCharge
}

// PartialPayment reports whether the partial up-front amount was requested.
func (q PriceQuoteQuery) PartialPayment() bool {
	return q.partialPayment
}
