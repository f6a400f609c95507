package pricing

import (
	"errors"
	"fmt"
	"time"
)

// ErrCouponRejected is the sentinel for all coupon rejections.
// Use errors.Is to classify and errors.As to read the specific reason.
var ErrCouponRejected = errors.New("coupon rejected")

// CouponRejectionReason identifies why a coupon could not be applied.
type CouponRejectionReason string

const (
	CouponNotFound     CouponRejectionReason = "not_found"
	CouponInactive     CouponRejectionReason = "inactive"
	CouponNotYetValid  CouponRejectionReason = "not_yet_valid"
	CouponExpired      CouponRejectionReason = "expired"
	CouponBelowMinimum CouponRejectionReason = "below_minimum"
)

// CouponRejectedError carries the rejected code and the specific reason so
// the caller can show "expired" vs "below minimum" instead of a generic failure.
type CouponRejectedError struct {
	Code   string
	Reason CouponRejectionReason
}

// NewCouponRejectedError creates a rejection for the given code and reason.
func NewCouponRejectedError(code string, reason CouponRejectionReason) *CouponRejectedError {
	return &CouponRejectedError{Code: code, Reason: reason}
}

func (e *CouponRejectedError) Error() string {
	return fmt.Sprintf("coupon %q rejected: %s", e.Code, e.Reason)
}

func (e *CouponRejectedError) Unwrap() error {
	return ErrCouponRejected
}

// DiscountType distinguishes percentage coupons from fixed-amount coupons.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Coupon is a read-only snapshot of a coupon row as the engine sees it.
// Optional constraints are pointers; nil means the constraint is not set.
type Coupon struct {
	Code           string
	Type           DiscountType
	Value          int64
	MaxDiscount    *int64
	MinOrderAmount *int64
	ValidFrom      *time.Time
	ValidUntil     *time.Time
	Active         bool
}

// Validate checks the coupon against the subtotal at the given instant.
// An expired coupon is rejected as expired regardless of any other field.
func (c Coupon) Validate(subtotal int64, now time.Time) error {
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return NewCouponRejectedError(c.Code, CouponExpired)
	}
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return NewCouponRejectedError(c.Code, CouponNotYetValid)
	}
	if !c.Active {
		return NewCouponRejectedError(c.Code, CouponInactive)
	}
	if c.MinOrderAmount != nil && subtotal < *c.MinOrderAmount {
		return NewCouponRejectedError(c.Code, CouponBelowMinimum)
	}
	return nil
}

// Discount computes the coupon discount for the subtotal.
// Percentage coupons are rounded and capped at MaxDiscount when set;
// fixed coupons never exceed the subtotal. Assumes Validate passed.
func (c Coupon) Discount(subtotal int64) int64 {
	switch c.Type {
	case DiscountFixed:
		if c.Value > subtotal {
			return subtotal
		}
		return c.Value
	default:
		discount := roundPercent(subtotal, c.Value)
		if c.MaxDiscount != nil && discount > *c.MaxDiscount {
			return *c.MaxDiscount
		}
		return discount
	}
}
