// Package pricing implements the checkout pricing engine: a pure,
// side-effect-free computation over cart items, an optional coupon, and an
// optional delivery zone. All monetary amounts are int64 minor units.
//
// The engine guarantees two invariants for every result:
//
//	Total = Subtotal - DiscountAmount + DeliveryCharge
//	DiscountAmount >= 0, Total >= 0
//
// Quantity-tier and coupon discounts are computed independently and summed,
// never compounded. Coupon failures are reported as typed rejections with a
// specific reason; the engine never silently applies a zero discount.
package pricing
