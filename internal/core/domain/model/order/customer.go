package order

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// ErrCustomerIsNotConstructed is returned when a Customer was not created via NewCustomer.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer")

// Customer is the contact and address snapshot copied onto an order at
// creation. It is a value object, not a live reference: later edits to the
// customer's account never change a historical order.
type Customer struct {
	name    string
	phone   kernel.Phone
	address string
	city    string

	isConstructed bool
}

// NewCustomer creates a validated customer snapshot.
func NewCustomer(name string, phone kernel.Phone, address, city string) (Customer, error) {
	if name == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer name")
	}
	if err := phone.Validate(); err != nil {
		return Customer{}, err
	}
	if address == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer address")
	}

	return Customer{
		name:          name,
		phone:         phone,
		address:       address,
		city:          city,
		isConstructed: true,
	}, nil
}

// Validate ensures the customer was built through NewCustomer.
func (c Customer) Validate() error {
	if !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

// Name returns the customer's name.
func (c Customer) Name() string { return c.name }

// Phone returns the normalized contact phone.
func (c Customer) Phone() kernel.Phone { return c.phone }

// Address returns the delivery address line.
func (c Customer) Address() string { return c.address }

// City returns the delivery city or area, possibly empty.
func (c Customer) City() string { return c.city }
