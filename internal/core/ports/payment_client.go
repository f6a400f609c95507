package ports

import (
	"context"
)

// PaymentCompleted is the gateway's transaction status for a settled charge.
const PaymentCompleted = "COMPLETED"

// PaymentCharge is a charge session created with the gateway. The customer
// finishes the payment on the gateway's hosted page at RedirectURL.
type PaymentCharge struct {
	TransactionID string
	RedirectURL   string
}

// PaymentClient defines the contract with the external payment gateway.
type PaymentClient interface {
	// CreateCharge opens a charge session for an invoice and amount in
	// minor currency units.
	CreateCharge(ctx context.Context, invoice string, amount int64) (PaymentCharge, error)

	// VerifyTransaction fetches the gateway's status for a transaction.
	// An order is treated as paid only when the returned status is
	// PaymentCompleted; the gateway callback alone is never trusted.
	VerifyTransaction(ctx context.Context, transactionID string) (string, error)
}
