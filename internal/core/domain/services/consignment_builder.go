package services

import (
	"strings"

	"storefront/internal/core/domain/model/order"
)

// invoicePrefix namespaces our invoice references on the carrier side so
// they cannot collide with another merchant's numbering.
const invoicePrefix = "SF-"

// invoiceAlphabet is the character set the carrier accepts in an invoice
// reference. Anything else is stripped during sanitization.
const invoiceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-"

// ConsignmentRequest is the carrier booking payload derived from an order.
type ConsignmentRequest struct {
	Invoice       string
	RecipientName string
	Phone         string
	Address       string
	City          string
	CashToCollect int64
	ItemCount     int
	Note          string
}

// ConsignmentBuilder is a domain service that converts a dispatch-eligible
// order into a carrier booking request.
//
// Business rules:
//   - The order must be valid, dispatch eligible, and not already dispatched
//   - The phone number is the normalized local digit format
//   - The invoice reference is the sanitized order number under a fixed prefix
//   - Cash to collect follows the order's payment method and status
type ConsignmentBuilder struct{}

// NewConsignmentBuilder creates a ConsignmentBuilder.
func NewConsignmentBuilder() ConsignmentBuilder {
	return ConsignmentBuilder{}
}

// Build derives the booking request for an order. The same order always
// yields the same invoice reference, which doubles as the carrier-side
// idempotency key for retries after an unknown-outcome dispatch.
func (b ConsignmentBuilder) Build(o *order.Order) (ConsignmentRequest, error) {
	if err := o.Validate(); err != nil {
		return ConsignmentRequest{}, err
	}
	if o.IsDispatched() {
		return ConsignmentRequest{}, order.ErrAlreadyDispatched
	}
	if !o.Status().IsDispatchEligible() {
		return ConsignmentRequest{}, order.ErrNotDispatchEligible
	}

	var itemCount int
	for _, item := range o.Items() {
		itemCount += item.Quantity()
	}

	customer := o.Customer()
	return ConsignmentRequest{
		Invoice:       b.SanitizeInvoice(o.OrderNumber()),
		RecipientName: customer.Name(),
		Phone:         customer.Phone().String(),
		Address:       customer.Address(),
		City:          customer.City(),
		CashToCollect: o.CashToCollect(),
		ItemCount:     itemCount,
	}, nil
}

// SanitizeInvoice strips characters outside the carrier's allowed alphabet
// from an order number and applies the fixed prefix.
func (b ConsignmentBuilder) SanitizeInvoice(orderNumber string) string {
	var sb strings.Builder
	for _, r := range orderNumber {
		if strings.ContainsRune(invoiceAlphabet, r) {
			sb.WriteRune(r)
		}
	}
	return invoicePrefix + sb.String()
}
