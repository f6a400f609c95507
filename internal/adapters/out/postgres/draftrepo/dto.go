// Package draftrepo provides data transfer objects and mapping functions for
// checkout draft persistence. Drafts are keyed by browser session, so the
// repository exposes upsert semantics instead of add/update.
package draftrepo

import (
	"time"

	"storefront/internal/core/domain/model/draft"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DraftDTO represents the database structure for persisting checkout drafts.
type DraftDTO struct {
	SessionID string `gorm:"primaryKey"`

	Name    string
	Phone   string `gorm:"index"`
	Address string
	City    string

	CartJSON string `gorm:"column:cart_json"`

	Converted bool       `gorm:"index"`
	OrderID   *uuid.UUID `gorm:"type:uuid"`

	CreatedAt     time.Time
	LastUpdatedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for checkout drafts.
func (DraftDTO) TableName() string {
	return "checkout_drafts"
}

// fromDomain converts a draft aggregate to its database representation.
func fromDomain(aggregate *draft.Draft) DraftDTO {
	var orderID *uuid.UUID
	if id := aggregate.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	fields := aggregate.Fields()
	return DraftDTO{
		SessionID:     aggregate.SessionID(),
		Name:          fields.Name,
		Phone:         fields.Phone,
		Address:       fields.Address,
		City:          fields.City,
		CartJSON:      aggregate.CartJSON(),
		Converted:     aggregate.IsConverted(),
		OrderID:       orderID,
		CreatedAt:     aggregate.CreatedAt(),
		LastUpdatedAt: aggregate.LastUpdatedAt(),
	}
}

// toDomain converts a database DTO to a draft aggregate using RestoreDraft.
func toDomain(dto DraftDTO) (*draft.Draft, error) {
	var orderID *kernel.UUID
	if dto.OrderID != nil {
		id, err := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if err != nil {
			return nil, err
		}
		orderID = &id
	}

	return draft.RestoreDraft(
		dto.SessionID,
		draft.Fields{Name: dto.Name, Phone: dto.Phone, Address: dto.Address, City: dto.City},
		dto.CartJSON,
		dto.Converted,
		orderID,
		dto.CreatedAt,
		dto.LastUpdatedAt,
	)
}
