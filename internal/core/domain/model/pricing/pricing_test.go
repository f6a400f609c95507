package pricing_test

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/pricing"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func standardTiers() []pricing.QuantityTier {
	return []pricing.QuantityTier{
		{MinQuantity: 5, Percent: 10},
		{MinQuantity: 3, Percent: 5},
	}
}

func TestCompute_BaselineScenario(t *testing.T) {
	// Cart [{200 x2}, {150 x1}], zone charge 60, no coupon, tier starts at 5.
	result, err := pricing.Compute(pricing.Request{
		Items: []pricing.CartItem{
			{ProductID: "p1", Name: "Mug", Quantity: 2, UnitPrice: 200},
			{ProductID: "p2", Name: "Plate", Quantity: 1, UnitPrice: 150},
		},
		Tiers: pricing.DefaultQuantityTiers(),
		Zone:  &pricing.DeliveryZone{Name: "Dhaka", Charge: 60},
	}, testNow)

	require.NoError(t, err)
	assert.Equal(t, int64(550), result.Subtotal)
	assert.Equal(t, int64(0), result.QuantityDiscount)
	assert.Equal(t, int64(60), result.DeliveryCharge)
	assert.Equal(t, int64(610), result.Total)
}

func TestCompute_QuantityTierScenario(t *testing.T) {
	// Same cart with 3 qty of the 200-item: 5 items total hits the 10% tier.
	result, err := pricing.Compute(pricing.Request{
		Items: []pricing.CartItem{
			{ProductID: "p1", Name: "Mug", Quantity: 3, UnitPrice: 200},
			{ProductID: "p2", Name: "Plate", Quantity: 2, UnitPrice: 150},
		},
		Tiers: standardTiers(),
		Zone:  &pricing.DeliveryZone{Name: "Dhaka", Charge: 60},
	}, testNow)

	require.NoError(t, err)
	assert.Equal(t, int64(900), result.Subtotal)
	assert.Equal(t, int64(90), result.QuantityDiscount)
	assert.Equal(t, int64(900-90+60), result.Total)
}

func TestCompute_TiersDoNotStack(t *testing.T) {
	// Exactly 5 items of unit price 100: 10% only, never 10%+5%.
	result, err := pricing.Compute(pricing.Request{
		Items: []pricing.CartItem{{ProductID: "p1", Name: "Mug", Quantity: 5, UnitPrice: 100}},
		Tiers: standardTiers(),
	}, testNow)

	require.NoError(t, err)
	assert.Equal(t, int64(500), result.Subtotal)
	assert.Equal(t, int64(50), result.QuantityDiscount)
}

func TestCompute_MiddleTierApplies(t *testing.T) {
	result, err := pricing.Compute(pricing.Request{
		Items: []pricing.CartItem{{ProductID: "p1", Name: "Mug", Quantity: 3, UnitPrice: 100}},
		Tiers: standardTiers(),
	}, testNow)

	require.NoError(t, err)
	assert.Equal(t, int64(15), result.QuantityDiscount)
}

func TestCompute_UnsortedTierTableStillPicksHighest(t *testing.T) {
	result, err := pricing.Compute(pricing.Request{
		Items: []pricing.CartItem{{ProductID: "p1", Name: "Mug", Quantity: 6, UnitPrice: 100}},
		Tiers: []pricing.QuantityTier{
			{MinQuantity: 3, Percent: 5},
			{MinQuantity: 5, Percent: 10},
		},
	}, testNow)

	require.NoError(t, err)
	assert.Equal(t, int64(60), result.QuantityDiscount)
}

func TestCompute_CouponValidation(t *testing.T) {
	items := []pricing.CartItem{{ProductID: "p1", Name: "Mug", Quantity: 1, UnitPrice: 500}}

	tests := []struct {
		name   string
		coupon pricing.Coupon
		reason pricing.CouponRejectionReason
	}{
		{
			name:   "inactive coupon",
			coupon: pricing.Coupon{Code: "OFF10", Type: pricing.DiscountPercentage, Value: 10, Active: false},
			reason: pricing.CouponInactive,
		},
		{
			name: "not yet valid coupon",
			coupon: pricing.Coupon{
				Code: "SOON", Type: pricing.DiscountPercentage, Value: 10, Active: true,
				ValidFrom: ptr(testNow.Add(24 * time.Hour)),
			},
			reason: pricing.CouponNotYetValid,
		},
		{
			name: "expired coupon",
			coupon: pricing.Coupon{
				Code: "OLD", Type: pricing.DiscountPercentage, Value: 10, Active: true,
				ValidUntil: ptr(testNow.Add(-24 * time.Hour)),
			},
			reason: pricing.CouponExpired,
		},
		{
			name: "expired wins regardless of other fields",
			coupon: pricing.Coupon{
				Code: "OLD2", Type: pricing.DiscountPercentage, Value: 10, Active: false,
				ValidUntil:     ptr(testNow.Add(-time.Minute)),
				MinOrderAmount: ptr(int64(10_000)),
			},
			reason: pricing.CouponExpired,
		},
		{
			name: "below minimum order amount",
			coupon: pricing.Coupon{
				Code: "BIG", Type: pricing.DiscountFixed, Value: 100, Active: true,
				MinOrderAmount: ptr(int64(1_000)),
			},
			reason: pricing.CouponBelowMinimum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pricing.Compute(pricing.Request{Items: items, Coupon: &tt.coupon}, testNow)

			require.ErrorIs(t, err, pricing.ErrCouponRejected)

			var rejection *pricing.CouponRejectedError
			require.ErrorAs(t, err, &rejection)
			assert.Equal(t, tt.reason, rejection.Reason)
			assert.Equal(t, tt.coupon.Code, rejection.Code)
		})
	}
}

func TestCompute_PercentageCouponCappedAtMaxDiscount(t *testing.T) {
	result, err := pricing.Compute(pricing.Request{
		Items: []pricing.CartItem{{ProductID: "p1", Name: "Mug", Quantity: 1, UnitPrice: 10_000}},
		Coupon: &pricing.Coupon{
			Code: "OFF20", Type: pricing.DiscountPercentage, Value: 20, Active: true,
			MaxDiscount: ptr(int64(500)),
		},
	}, testNow)

	require.NoError(t, err)
	assert.Equal(t, int64(500), result.CouponDiscount)
	assert.LessOrEqual(t, result.CouponDiscount, int64(500))
}

func TestCompute_FixedCouponNeverExceedsSubtotal(t *testing.T) {
	result, err := pricing.Compute(pricing.Request{
		Items:  []pricing.CartItem{{ProductID: "p1", Name: "Mug", Quantity: 1, UnitPrice: 150}},
		Coupon: &pricing.Coupon{Code: "FLAT500", Type: pricing.DiscountFixed, Value: 500, Active: true},
	}, testNow)

	require.NoError(t, err)
	assert.Equal(t, int64(150), result.CouponDiscount)
	assert.GreaterOrEqual(t, result.Total, int64(0))
}

func TestCompute_MonetaryInvariantHolds(t *testing.T) {
	requests := []pricing.Request{
		{
			Items: []pricing.CartItem{{ProductID: "p1", Name: "A", Quantity: 7, UnitPrice: 99}},
			Tiers: standardTiers(),
			Zone:  &pricing.DeliveryZone{Name: "Z", Charge: 120},
		},
		{
			Items:  []pricing.CartItem{{ProductID: "p1", Name: "A", Quantity: 1, UnitPrice: 100}},
			Coupon: &pricing.Coupon{Code: "FLAT", Type: pricing.DiscountFixed, Value: 100, Active: true},
			Tiers:  standardTiers(),
		},
		{
			Items: []pricing.CartItem{{ProductID: "p1", Name: "A", Quantity: 5, UnitPrice: 1}},
			Tiers: standardTiers(),
		},
	}

	for _, req := range requests {
		result, err := pricing.Compute(req, testNow)
		require.NoError(t, err)

		assert.Equal(t, result.Subtotal-result.DiscountAmount+result.DeliveryCharge, result.Total)
		assert.GreaterOrEqual(t, result.DiscountAmount, int64(0))
		assert.GreaterOrEqual(t, result.Total, int64(0))
	}
}

func TestCompute_FreeDeliveryIsExplicitOptIn(t *testing.T) {
	zone := pricing.DeliveryZone{Name: "Dhaka", Charge: 60, FreeDeliveryThreshold: ptr(int64(500))}
	items := []pricing.CartItem{{ProductID: "p1", Name: "Mug", Quantity: 1, UnitPrice: 800}}

	t.Run("threshold met but waiver not requested keeps the charge", func(t *testing.T) {
		result, err := pricing.Compute(pricing.Request{Items: items, Zone: &zone}, testNow)
		require.NoError(t, err)
		assert.Equal(t, int64(60), result.DeliveryCharge)
	})

	t.Run("explicit waiver with threshold met drops the charge", func(t *testing.T) {
		result, err := pricing.Compute(pricing.Request{
			Items: items, Zone: &zone, WaiveDeliveryCharge: true,
		}, testNow)
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.DeliveryCharge)
	})

	t.Run("waiver requested below threshold keeps the charge", func(t *testing.T) {
		cheap := []pricing.CartItem{{ProductID: "p1", Name: "Mug", Quantity: 1, UnitPrice: 100}}
		result, err := pricing.Compute(pricing.Request{
			Items: cheap, Zone: &zone, WaiveDeliveryCharge: true,
		}, testNow)
		require.NoError(t, err)
		assert.Equal(t, int64(60), result.DeliveryCharge)
	})
}

func TestCompute_PartialPayment(t *testing.T) {
	t.Run("ten percent of total when above the delivery charge", func(t *testing.T) {
		result, err := pricing.Compute(pricing.Request{
			Items:          []pricing.CartItem{{ProductID: "p1", Name: "Mug", Quantity: 1, UnitPrice: 2_000}},
			Zone:           &pricing.DeliveryZone{Name: "Dhaka", Charge: 60},
			PartialPayment: true,
		}, testNow)
		require.NoError(t, err)
		assert.Equal(t, int64(206), result.PartialAmount) // round(2060 * 0.10)
	})

	t.Run("never below the delivery charge", func(t *testing.T) {
		result, err := pricing.Compute(pricing.Request{
			Items:          []pricing.CartItem{{ProductID: "p1", Name: "Mug", Quantity: 1, UnitPrice: 100}},
			Zone:           &pricing.DeliveryZone{Name: "Dhaka", Charge: 60},
			PartialPayment: true,
		}, testNow)
		require.NoError(t, err)
		assert.Equal(t, int64(60), result.PartialAmount)
	})

	t.Run("zero when not requested", func(t *testing.T) {
		result, err := pricing.Compute(pricing.Request{
			Items: []pricing.CartItem{{ProductID: "p1", Name: "Mug", Quantity: 1, UnitPrice: 100}},
		}, testNow)
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.PartialAmount)
	})
}

func TestCompute_InputValidation(t *testing.T) {
	t.Run("empty cart is rejected", func(t *testing.T) {
		_, err := pricing.Compute(pricing.Request{}, testNow)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero quantity line is rejected", func(t *testing.T) {
		_, err := pricing.Compute(pricing.Request{
			Items: []pricing.CartItem{{ProductID: "p1", Name: "Mug", Quantity: 0, UnitPrice: 100}},
		}, testNow)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("negative unit price is rejected", func(t *testing.T) {
		_, err := pricing.Compute(pricing.Request{
			Items: []pricing.CartItem{{ProductID: "p1", Name: "Mug", Quantity: 1, UnitPrice: -5}},
		}, testNow)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
