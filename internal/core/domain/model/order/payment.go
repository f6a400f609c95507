package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// PaymentStatus represents the payment lifecycle: unpaid -> partial -> paid,
// with refunded reachable only from paid. It is independent of the order
// status dimension.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentUnpaid
	PaymentPartial
	PaymentPaid
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:  "unknown",
		PaymentUnpaid:   "unpaid",
		PaymentPartial:  "partial",
		PaymentPaid:     "paid",
		PaymentRefunded: "refunded",
	}
}

// PaymentStatusFromString parses the persisted/API string form.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if str == s && status != PaymentUnknown {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("payment status",
		fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks that the payment status is defined.
func (p PaymentStatus) Validate() error {
	if p <= PaymentUnknown || p > PaymentRefunded {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

// String implements fmt.Stringer. Safe on any value.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// TransitionTo validates a payment move and returns the new status.
// Payment progress is monotonic: unpaid may become partial or paid, partial
// may become paid, and only a paid order may be refunded.
func (p PaymentStatus) TransitionTo(target PaymentStatus) (PaymentStatus, error) {
	if err := target.Validate(); err != nil {
		return PaymentUnknown, err
	}

	allowed := map[PaymentStatus][]PaymentStatus{
		PaymentUnpaid:  {PaymentPartial, PaymentPaid},
		PaymentPartial: {PaymentPaid},
		PaymentPaid:    {PaymentRefunded},
	}
	for _, next := range allowed[p] {
		if next == target {
			return target, nil
		}
	}

	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("payment status",
		fmt.Errorf("cannot move payment from %s to %s", p, target))
}

// PaymentMethod identifies how the customer elected to pay.
type PaymentMethod string

const (
	// MethodCashOnDelivery collects the full total on delivery.
	MethodCashOnDelivery PaymentMethod = "cod"

	// MethodGateway is a pre-paid flow confirmed by a gateway callback.
	MethodGateway PaymentMethod = "gateway"

	// MethodPartial collects a reduced up-front amount, remainder on delivery.
	MethodPartial PaymentMethod = "partial"
)

// Validate checks that the method is one of the supported flows.
func (m PaymentMethod) Validate() error {
	switch m {
	case MethodCashOnDelivery, MethodGateway, MethodPartial:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%q is not a valid payment method", string(m)))
	}
}

// InitialPaymentStatus returns the payment status a new order starts in
// for this method. Gateway orders are only created after a successful
// verification call, so they start paid.
func (m PaymentMethod) InitialPaymentStatus() PaymentStatus {
	switch m {
	case MethodGateway:
		return PaymentPaid
	case MethodPartial:
		return PaymentPartial
	default:
		return PaymentUnpaid
	}
}
