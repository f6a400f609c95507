// Package zonerepo provides read access to delivery zone configuration.
package zonerepo

import (
	"storefront/internal/core/domain/model/pricing"
)

// ZoneDTO represents the database structure for delivery zone rows.
type ZoneDTO struct {
	Name                  string `gorm:"primaryKey"`
	Charge                int64
	FreeDeliveryThreshold *int64
	TransitDays           int
}

// TableName specifies the database table name for delivery zones.
func (ZoneDTO) TableName() string {
	return "delivery_zones"
}

// toDomain converts a zone row to the pricing snapshot.
func toDomain(dto ZoneDTO) pricing.DeliveryZone {
	return pricing.DeliveryZone{
		Name:                  dto.Name,
		Charge:                dto.Charge,
		FreeDeliveryThreshold: dto.FreeDeliveryThreshold,
		TransitDays:           dto.TransitDays,
	}
}
