package zonerepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/pricing"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormZoneRepository implements ZoneRepository using GORM.
type GormZoneRepository struct {
	db *gorm.DB
}

// NewGormZoneRepository creates a new GORM zone repository.
func NewGormZoneRepository(db *gorm.DB) *GormZoneRepository {
	return &GormZoneRepository{db: db}
}

// GetByName retrieves a delivery zone by its unique name.
func (r *GormZoneRepository) GetByName(ctx context.Context, name string) (pricing.DeliveryZone, error) {
	if name == "" {
		return pricing.DeliveryZone{}, errs.NewValueIsRequiredError("zone name")
	}

	var dto ZoneDTO
	if err := r.db.WithContext(ctx).First(&dto, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pricing.DeliveryZone{}, errs.NewObjectNotFoundError("delivery zone", name)
		}
		return pricing.DeliveryZone{}, err
	}

	return toDomain(dto), nil
}

// GetAll retrieves every configured delivery zone ordered by name.
func (r *GormZoneRepository) GetAll(ctx context.Context) ([]pricing.DeliveryZone, error) {
	var dtos []ZoneDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	zones := make([]pricing.DeliveryZone, 0, len(dtos))
	for _, dto := range dtos {
		zones = append(zones, toDomain(dto))
	}

	return zones, nil
}
