// Package order provides the Order aggregate root for the fulfillment core:
// a finalized, priced purchase with immutable line items and a mutable
// lifecycle tracked along two independent dimensions.
//
// The package includes:
//   - Order: the aggregate root holding the customer snapshot, monetary
//     breakdown, line items, and courier dispatch fields
//   - Item: an immutable snapshot of one cart line at order time
//   - Status: the order lifecycle (pending through delivered, plus the
//     terminal cancelled/refunded states)
//   - PaymentStatus: the payment lifecycle (unpaid/partial/paid/refunded)
//
// Key business rules:
//   - Total = Subtotal - DiscountAmount + DeliveryCharge for every order
//   - The status table is deliberately permissive: any non-terminal status
//     may move to any other status, so admin workflows like marking a phone
//     order delivered in bulk keep working; only cancelled and refunded are
//     terminal and reject further transitions
//   - The two lifecycle dimensions are independent: a cash-on-delivery order
//     can be shipped while still unpaid
//   - Dispatch is recorded at most once per order; the consignment id is the
//     idempotency witness
package order
