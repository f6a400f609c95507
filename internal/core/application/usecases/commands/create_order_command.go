package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired        = errors.New("at least one cart item is required")
	ErrZoneIsRequired          = errors.New("delivery zone is required")
	ErrTransactionIDIsRequired = errors.New("gateway transaction ID is required")
)

// OrderItemInput is one cart line as submitted at checkout.
type OrderItemInput struct {
	ProductID   string
	Name        string
	VariantName string
	Quantity    int
	UnitPrice   int64
}

// CreateOrderCommand represents a request to place an order from a priced
// checkout. It carries the customer snapshot, the cart lines, the pricing
// inputs (zone, coupon, delivery waiver) and the elected payment method.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "sess-1",
//	    "Rahim Uddin", "01712345678", "12 Lake Road", "Dhaka",
//	    items, "dhaka", "WELCOME10", order.MethodCashOnDelivery, false, "")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	sessionID string

	customer order.Customer
	items    []OrderItemInput

	zoneName            string
	couponCode          string
	paymentMethod       order.PaymentMethod
	waiveDeliveryCharge bool
	transactionID       string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place an order.
// The customer fields are validated through the domain constructors: the
// phone must normalize to the local digit format, name/address/city must be
// present. A gateway order additionally requires the transaction ID from
// the gateway callback.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	sessionID string,
	customerName, customerPhone, address, city string,
	items []OrderItemInput,
	zoneName, couponCode string,
	method order.PaymentMethod,
	waiveDeliveryCharge bool,
	transactionID string,
) (CreateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}

	phone, err := kernel.NewPhone(customerPhone)
	if err != nil {
		return CreateOrderCommand{}, err
	}
	customer, err := order.NewCustomer(customerName, phone, address, city)
	if err != nil {
		return CreateOrderCommand{}, err
	}

	if len(items) == 0 {
		return CreateOrderCommand{}, ErrItemsAreRequired
	}
	if zoneName == "" {
		return CreateOrderCommand{}, ErrZoneIsRequired
	}
	if err = method.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	if method == order.MethodGateway && transactionID == "" {
		return CreateOrderCommand{}, ErrTransactionIDIsRequired
	}

	return CreateOrderCommand{
		orderID:             orderID,
		sessionID:           sessionID,
		customer:            customer,
		items:               items,
		zoneName:            zoneName,
		couponCode:          couponCode,
		paymentMethod:       method,
		waiveDeliveryCharge: waiveDeliveryCharge,
		transactionID:       transactionID,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// SessionID returns the checkout session key, empty when the order was not
// placed from a recorded draft.
func (c CreateOrderCommand) SessionID() string {
	return c.sessionID
}

// Customer returns the validated contact/address snapshot.
func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

// Items returns the submitted cart lines.
func (c CreateOrderCommand) Items() []OrderItemInput {
	return c.items
}

// ZoneName returns the selected delivery zone name.
func (c CreateOrderCommand) ZoneName() string {
	return c.zoneName
}

// CouponCode returns the submitted coupon code, possibly empty.
func (c CreateOrderCommand) CouponCode() string {
	return c.couponCode
}

// PaymentMethod returns the elected payment method.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// WaiveDeliveryCharge reports whether the customer opted in to the zone's
// free-delivery threshold.
func (c CreateOrderCommand) WaiveDeliveryCharge() bool {
	return c.waiveDeliveryCharge
}

// TransactionID returns the gateway transaction to verify, empty for
// non-gateway methods.
func (c CreateOrderCommand) TransactionID() string {
	return c.transactionID
}
