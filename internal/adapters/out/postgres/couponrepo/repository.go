package couponrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/pricing"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCouponRepository implements CouponRepository using GORM.
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GORM coupon repository.
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// GetByCode retrieves a coupon by its case-sensitive code.
func (r *GormCouponRepository) GetByCode(ctx context.Context, code string) (pricing.Coupon, error) {
	if code == "" {
		return pricing.Coupon{}, errs.NewValueIsRequiredError("coupon code")
	}

	var dto CouponDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pricing.Coupon{}, errs.NewObjectNotFoundError("coupon", code)
		}
		return pricing.Coupon{}, err
	}

	return toDomain(dto), nil
}

// IncrementUsage bumps the redemption counter in the database so concurrent
// checkouts cannot lose updates.
func (r *GormCouponRepository) IncrementUsage(ctx context.Context, code string) error {
	result := r.db.WithContext(ctx).Model(&CouponDTO{}).
		Where("code = ?", code).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("coupon", code)
	}

	return nil
}
