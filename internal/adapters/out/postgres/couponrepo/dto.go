// Package couponrepo provides read and counter access to coupon rows.
// Coupons are administered outside this service; the storefront only reads
// them for pricing and bumps the redemption counter at checkout.
package couponrepo

import (
	"time"

	"storefront/internal/core/domain/model/pricing"
)

// CouponDTO represents the database structure for coupon rows.
type CouponDTO struct {
	Code           string `gorm:"primaryKey"`
	Type           string
	Value          int64
	MaxDiscount    *int64
	MinOrderAmount *int64
	ValidFrom      *time.Time
	ValidUntil     *time.Time
	Active         bool
	UsedCount      int64
}

// TableName specifies the database table name for coupons.
func (CouponDTO) TableName() string {
	return "coupons"
}

// toDomain converts a coupon row to the pricing snapshot.
func toDomain(dto CouponDTO) pricing.Coupon {
	return pricing.Coupon{
		Code:           dto.Code,
		Type:           pricing.DiscountType(dto.Type),
		Value:          dto.Value,
		MaxDiscount:    dto.MaxDiscount,
		MinOrderAmount: dto.MinOrderAmount,
		ValidFrom:      dto.ValidFrom,
		ValidUntil:     dto.ValidUntil,
		Active:         dto.Active,
	}
}
