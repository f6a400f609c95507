package order

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/pricing"
	"storefront/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrAlreadyDispatched is returned when a dispatch is recorded for an
	// order that already has a consignment.
	ErrAlreadyDispatched = errors.New("order is already dispatched")

	// ErrNotDispatchEligible is returned when a dispatch is recorded for an
	// order outside the confirmed/processing statuses.
	ErrNotDispatchEligible = errors.New("order status is not dispatch eligible")
)

// Order is the aggregate root of the fulfillment core. Identity and the
// monetary breakdown are fixed at creation; only the two lifecycle statuses
// and the courier fields mutate afterwards. Orders are never deleted, only
// transitioned.
type Order struct {
	id          kernel.UUID
	orderNumber string
	customer    Customer

	status        Status
	paymentStatus PaymentStatus
	paymentMethod PaymentMethod

	subtotal             int64
	discountAmount       int64
	deliveryCharge       int64
	totalAmount          int64
	partialPaymentAmount int64
	couponCode           string

	consignmentID string
	trackingCode  string
	courierStatus string

	items []Item

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates an order in pending status from a priced cart.
//
// The pricing result is trusted as a unit: the constructor re-checks the
// monetary invariant Total = Subtotal - DiscountAmount + DeliveryCharge and
// rejects the order when it does not hold. The initial payment status is
// derived from the payment method.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	customer Customer,
	items []Item,
	priced pricing.Result,
	method PaymentMethod,
	couponCode string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCustomer(customer),
		o.setItems(items),
		o.setTotals(priced),
		o.setPaymentMethod(method),
	); err != nil {
		return nil, err
	}

	o.paymentStatus = method.InitialPaymentStatus()
	o.couponCode = couponCode

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without re-deriving
// creation-time state. Statuses and courier fields are taken as stored.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	customer Customer,
	items []Item,
	priced pricing.Result,
	method PaymentMethod,
	couponCode string,
	status Status,
	paymentStatus PaymentStatus,
	consignmentID, trackingCode, courierStatus string,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o, err := NewOrder(id, orderNumber, customer, items, priced, method, couponCode, createdAt)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(status.Validate(), paymentStatus.Validate()); err != nil {
		return nil, err
	}

	o.status = status
	o.paymentStatus = paymentStatus
	o.consignmentID = consignmentID
	o.trackingCode = trackingCode
	o.courierStatus = courierStatus
	o.updatedAt = updatedAt

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// OrderNumber returns the human-facing order number.
func (o *Order) OrderNumber() string { return o.orderNumber }

// Customer returns the contact/address snapshot taken at creation.
func (o *Order) Customer() Customer { return o.customer }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// PaymentMethod returns the payment method elected at checkout.
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }

// Subtotal returns the sum of all line totals.
func (o *Order) Subtotal() int64 { return o.subtotal }

// DiscountAmount returns the combined quantity and coupon discount.
func (o *Order) DiscountAmount() int64 { return o.discountAmount }

// DeliveryCharge returns the zone charge applied at creation.
func (o *Order) DeliveryCharge() int64 { return o.deliveryCharge }

// TotalAmount returns the grand total.
func (o *Order) TotalAmount() int64 { return o.totalAmount }

// PartialPaymentAmount returns the up-front amount for the partial path,
// zero otherwise.
func (o *Order) PartialPaymentAmount() int64 { return o.partialPaymentAmount }

// CouponCode returns the applied coupon code, possibly empty.
func (o *Order) CouponCode() string { return o.couponCode }

// ConsignmentID returns the courier booking id, empty until dispatched.
func (o *Order) ConsignmentID() string { return o.consignmentID }

// TrackingCode returns the courier tracking code, empty until dispatched.
func (o *Order) TrackingCode() string { return o.trackingCode }

// CourierStatus returns the last polled courier delivery status.
func (o *Order) CourierStatus() string { return o.courierStatus }

// Items returns the immutable line item snapshots.
func (o *Order) Items() []Item { return o.items }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// IsDispatched reports whether a courier consignment has been recorded.
func (o *Order) IsDispatched() bool {
	return o.consignmentID != ""
}

// CashToCollect returns the amount the courier must collect on delivery:
// the full total for an unpaid cash-on-delivery order, the outstanding
// remainder for a partial payment, zero otherwise.
func (o *Order) CashToCollect() int64 {
	switch {
	case o.paymentMethod == MethodCashOnDelivery && o.paymentStatus == PaymentUnpaid:
		return o.totalAmount
	case o.paymentMethod == MethodPartial && o.paymentStatus == PaymentPartial:
		return o.totalAmount - o.partialPaymentAmount
	default:
		return 0
	}
}

// TransitionTo moves the order to the target lifecycle status.
// Terminal states reject with a TerminalStateError.
func (o *Order) TransitionTo(target Status, now time.Time) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// TransitionPaymentTo moves the payment dimension to the target status.
func (o *Order) TransitionPaymentTo(target PaymentStatus, now time.Time) error {
	newStatus, err := o.paymentStatus.TransitionTo(target)
	if err != nil {
		return err
	}

	o.paymentStatus = newStatus
	o.updatedAt = now
	return nil
}

// MarkDispatched records a successful courier booking and advances the
// order to shipped. It is the order-side idempotency point: a second
// dispatch attempt fails with ErrAlreadyDispatched and changes nothing.
func (o *Order) MarkDispatched(consignmentID, trackingCode, courierStatus string, now time.Time) error {
	if o.IsDispatched() {
		return ErrAlreadyDispatched
	}
	if !o.status.IsDispatchEligible() {
		return fmt.Errorf("%w: status is %s", ErrNotDispatchEligible, o.status)
	}
	if consignmentID == "" {
		return errs.NewValueIsRequiredError("consignment ID")
	}

	newStatus, err := o.status.TransitionTo(StatusShipped)
	if err != nil {
		return err
	}

	o.consignmentID = consignmentID
	o.trackingCode = trackingCode
	o.courierStatus = courierStatus
	o.status = newStatus
	o.updatedAt = now
	return nil
}

// UpdateCourierStatus refreshes the cached courier delivery status.
// It never touches the order lifecycle status; terminal reconciliation is
// an out-of-core concern.
func (o *Order) UpdateCourierStatus(courierStatus string, now time.Time) error {
	if !o.IsDispatched() {
		return fmt.Errorf("%w: no consignment to poll", ErrNotDispatchEligible)
	}

	o.courierStatus = courierStatus
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}

func (o *Order) setTotals(priced pricing.Result) error {
	if priced.Subtotal < 0 || priced.DiscountAmount < 0 || priced.DeliveryCharge < 0 || priced.Total < 0 {
		return errs.NewValueIsInvalidError("order amounts must not be negative")
	}
	if priced.Total != priced.Subtotal-priced.DiscountAmount+priced.DeliveryCharge {
		return errs.NewValueIsInvalidErrorWithCause("order totals",
			fmt.Errorf("%d != %d - %d + %d",
				priced.Total, priced.Subtotal, priced.DiscountAmount, priced.DeliveryCharge))
	}

	o.subtotal = priced.Subtotal
	o.discountAmount = priced.DiscountAmount
	o.deliveryCharge = priced.DeliveryCharge
	o.totalAmount = priced.Total
	o.partialPaymentAmount = priced.PartialAmount
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}
