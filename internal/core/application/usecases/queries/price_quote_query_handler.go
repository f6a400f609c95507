package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"storefront/internal/core/domain/model/pricing"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// PriceQuoteQueryHandler prices a cart against the stored zone and coupon.
// Uses direct SQL for optimal read performance in the CQRS pattern; the
// actual money math stays in the pricing engine.
type PriceQuoteQueryHandler struct {
	db *gorm.DB
}

// NewPriceQuoteQueryHandler creates a handler for display-only quotes.
// Requires a GORM database connection for query execution.
func NewPriceQuoteQueryHandler(db *gorm.DB) PriceQuoteQueryHandler {
	return PriceQuoteQueryHandler{db: db}
}

// Handle executes the quote. An unknown zone or an ineligible coupon is a
// CouponRejectedError / ObjectNotFoundError, same as at order placement.
func (h PriceQuoteQueryHandler) Handle(
	ctx context.Context, query PriceQuoteQuery,
) (pricing.Result, error) {
	if err := query.Validate(); err != nil {
		return pricing.Result{}, err
	}

	zone, err := h.loadZone(ctx, query.ZoneName())
	if err != nil {
		return pricing.Result{}, err
	}

	var coupon *pricing.Coupon
	if query.CouponCode() != "" {
		coupon, err = h.loadCoupon(ctx, query.CouponCode())
		if err != nil {
			return pricing.Result{}, err
		}
	}

	return pricing.Compute(pricing.Request{
		Items:               query.Items(),
		Tiers:               pricing.DefaultQuantityTiers(),
		Coupon:              coupon,
		Zone:                &zone,
		WaiveDeliveryCharge: query.WaiveDeliveryCharge(),
		PartialPayment:      query.PartialPayment(),
	}, time.Now())
}

func (h PriceQuoteQueryHandler) loadZone(ctx context.Context, name string) (pricing.DeliveryZone, error) {
	var zone pricing.DeliveryZone
	err := h.db.WithContext(ctx).Raw(`
		SELECT name, charge, free_delivery_threshold, transit_days
		FROM delivery_zones
		WHERE name = ?
	`, name).Row().Scan(&zone.Name, &zone.Charge, &zone.FreeDeliveryThreshold, &zone.TransitDays)
	if errors.Is(err, sql.ErrNoRows) {
		return pricing.DeliveryZone{}, errs.NewObjectNotFoundError("delivery zone", name)
	}
	if err != nil {
		return pricing.DeliveryZone{}, err
	}
	return zone, nil
}

func (h PriceQuoteQueryHandler) loadCoupon(ctx context.Context, code string) (*pricing.Coupon, error) {
	var coupon pricing.Coupon
	err := h.db.WithContext(ctx).Raw(`
		SELECT code, type, value, max_discount, min_order_amount, valid_from, valid_until, active
		FROM coupons
		WHERE code = ?
	`, code).Row().Scan(
		&coupon.Code, &coupon.Type, &coupon.Value, &coupon.MaxDiscount,
		&coupon.MinOrderAmount, &coupon.ValidFrom, &coupon.ValidUntil, &coupon.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pricing.NewCouponRejectedError(code, pricing.CouponNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}
