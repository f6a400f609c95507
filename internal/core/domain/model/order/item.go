package order

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item was not created through NewItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// Item is an immutable snapshot of one cart line taken at order time.
// Name and variant are captured, not referenced, so historical orders stay
// stable when the catalog changes or a product is deleted.
type Item struct {
	id          kernel.UUID
	productID   string
	name        string
	variantName string
	quantity    int
	unitPrice   int64
	lineTotal   int64

	isConstructed bool
}

// NewItem creates a validated order line snapshot.
// The line total must equal unit price times quantity.
func NewItem(id kernel.UUID, productID, name, variantName string, quantity int, unitPrice int64) (Item, error) {
	if err := id.Validate(); err != nil {
		return Item{}, err
	}
	if productID == "" {
		return Item{}, errs.NewValueIsRequiredError("product ID")
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("item quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("item unit price",
			fmt.Errorf("%d is negative", unitPrice))
	}

	return Item{
		id:            id,
		productID:     productID,
		name:          name,
		variantName:   variantName,
		quantity:      quantity,
		unitPrice:     unitPrice,
		lineTotal:     unitPrice * int64(quantity),
		isConstructed: true,
	}, nil
}

// RestoreItem reconstructs an item from persistence, keeping the stored
// line total even if it would no longer be recomputed the same way.
func RestoreItem(
	id kernel.UUID, productID, name, variantName string, quantity int, unitPrice, lineTotal int64,
) (Item, error) {
	item, err := NewItem(id, productID, name, variantName, quantity, unitPrice)
	if err != nil {
		return Item{}, err
	}
	item.lineTotal = lineTotal
	return item, nil
}

// Validate ensures the item was built through a constructor.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i Item) ID() kernel.UUID { return i.id }

// ProductID returns the catalog reference the line was created from.
func (i Item) ProductID() string { return i.productID }

// Name returns the product name captured at order time.
func (i Item) Name() string { return i.name }

// VariantName returns the variant name captured at order time.
func (i Item) VariantName() string { return i.variantName }

// Quantity returns the ordered quantity.
func (i Item) Quantity() int { return i.quantity }

// UnitPrice returns the per-unit price captured at order time.
func (i Item) UnitPrice() int64 { return i.unitPrice }

// LineTotal returns quantity times unit price.
func (i Item) LineTotal() int64 { return i.lineTotal }
