package pricing

import (
	"fmt"
	"math"
	"sort"
	"time"

	"storefront/internal/pkg/errs"
)

// partialPaymentPercent is the up-front share collected on the partial
// payment path; the partial amount never drops below the delivery charge.
const partialPaymentPercent = 10

// CartItem is one cart line as submitted at checkout. Name and VariantName
// are captured here so order items stay stable if the catalog changes later.
type CartItem struct {
	ProductID   string
	Name        string
	VariantName string
	Quantity    int
	UnitPrice   int64
}

// QuantityTier is one row of the quantity-discount table: carts with at
// least MinQuantity total items get Percent off the subtotal.
type QuantityTier struct {
	MinQuantity int
	Percent     int64
}

// DefaultQuantityTiers is the storefront's standard discount table.
func DefaultQuantityTiers() []QuantityTier {
	return []QuantityTier{
		{MinQuantity: 5, Percent: 10},
	}
}

// Request is the full input to one pricing computation.
type Request struct {
	Items []CartItem
	Tiers []QuantityTier

	// Coupon and Zone are nil when not selected.
	Coupon *Coupon
	Zone   *DeliveryZone

	// WaiveDeliveryCharge opts in to the zone's free-delivery threshold.
	// Without it the flat charge always applies.
	WaiveDeliveryCharge bool

	// PartialPayment requests the reduced up-front amount.
	PartialPayment bool
}

// Result is the priced breakdown for a cart.
// Total = Subtotal - DiscountAmount + DeliveryCharge always holds.
type Result struct {
	Subtotal         int64
	QuantityDiscount int64
	CouponDiscount   int64
	DiscountAmount   int64
	DeliveryCharge   int64
	Total            int64

	// PartialAmount is zero unless partial payment was requested.
	PartialAmount int64
}

// Compute prices a cart. It is pure: the caller supplies the clock so coupon
// validity is deterministic and testable.
//
// Failure modes: empty cart or malformed line returns a validation error;
// an ineligible coupon returns a CouponRejectedError with its reason.
func Compute(req Request, now time.Time) (Result, error) {
	if len(req.Items) == 0 {
		return Result{}, errs.NewValueIsRequiredError("cart items")
	}

	var subtotal int64
	var itemCount int
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return Result{}, errs.NewValueIsInvalidErrorWithCause("cart item quantity",
				fmt.Errorf("line %d: %d is not greater than 0", i, item.Quantity))
		}
		if item.UnitPrice < 0 {
			return Result{}, errs.NewValueIsInvalidErrorWithCause("cart item unit price",
				fmt.Errorf("line %d: %d is negative", i, item.UnitPrice))
		}
		subtotal += item.UnitPrice * int64(item.Quantity)
		itemCount += item.Quantity
	}

	quantityDiscount := quantityDiscountFor(req.Tiers, itemCount, subtotal)

	var couponDiscount int64
	if req.Coupon != nil {
		if err := req.Coupon.Validate(subtotal, now); err != nil {
			return Result{}, err
		}
		couponDiscount = req.Coupon.Discount(subtotal)
	}

	var deliveryCharge int64
	if req.Zone != nil {
		deliveryCharge = req.Zone.Charge
		if req.WaiveDeliveryCharge && req.Zone.QualifiesForFreeDelivery(subtotal) {
			deliveryCharge = 0
		}
	}

	// Discounts are summed, not compounded. If the sum would push the total
	// below zero it is clipped so the monetary invariant still holds.
	discount := quantityDiscount + couponDiscount
	if discount > subtotal+deliveryCharge {
		discount = subtotal + deliveryCharge
	}

	total := subtotal - discount + deliveryCharge

	result := Result{
		Subtotal:         subtotal,
		QuantityDiscount: quantityDiscount,
		CouponDiscount:   couponDiscount,
		DiscountAmount:   discount,
		DeliveryCharge:   deliveryCharge,
		Total:            total,
	}

	if req.PartialPayment {
		result.PartialAmount = max(deliveryCharge, roundPercent(total, partialPaymentPercent))
	}

	return result, nil
}

// quantityDiscountFor picks the single winning tier: the first tier, in
// descending MinQuantity order, whose threshold the cart reaches. Tiers
// never stack.
func quantityDiscountFor(tiers []QuantityTier, itemCount int, subtotal int64) int64 {
	if len(tiers) == 0 {
		return 0
	}

	sorted := make([]QuantityTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinQuantity > sorted[j].MinQuantity
	})

	for _, tier := range sorted {
		if itemCount >= tier.MinQuantity {
			return roundPercent(subtotal, tier.Percent)
		}
	}
	return 0
}

// roundPercent computes amount*percent/100 rounded to the nearest unit.
func roundPercent(amount, percent int64) int64 {
	return int64(math.Round(float64(amount) * float64(percent) / 100))
}
