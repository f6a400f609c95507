package ports

import (
	"context"

	"storefront/internal/core/domain/model/pricing"
)

// CouponRepository defines the persistence contract for coupons.
type CouponRepository interface {
	// GetByCode retrieves a coupon by its case-sensitive code.
	GetByCode(ctx context.Context, code string) (pricing.Coupon, error)

	// IncrementUsage atomically bumps the redemption counter for a coupon.
	// The increment happens in the database so concurrent checkouts cannot
	// lose updates.
	IncrementUsage(ctx context.Context, code string) error
}

// ZoneRepository defines the persistence contract for delivery zones.
type ZoneRepository interface {
	// GetByName retrieves a delivery zone by its unique name.
	GetByName(ctx context.Context, name string) (pricing.DeliveryZone, error)

	// GetAll retrieves every configured delivery zone.
	GetAll(ctx context.Context) ([]pricing.DeliveryZone, error)
}
