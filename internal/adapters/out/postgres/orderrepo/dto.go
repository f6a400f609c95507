// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/pricing"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The customer snapshot is embedded; line items live in their own table and
// are written together with the order row in one transaction.
type OrderDTO struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	OrderNumber string      `gorm:"uniqueIndex"`
	Customer    CustomerDTO `gorm:"embedded;embeddedPrefix:customer_"`

	Status        int `gorm:"index"`
	PaymentStatus int
	PaymentMethod string

	Subtotal             int64
	DiscountAmount       int64
	DeliveryCharge       int64
	TotalAmount          int64
	PartialPaymentAmount int64
	CouponCode           string

	ConsignmentID string `gorm:"index"`
	TrackingCode  string
	CourierStatus string

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO represents the embedded customer contact snapshot.
type CustomerDTO struct {
	Name    string
	Phone   string
	Address string
	City    string
}

// OrderItemDTO represents one persisted order line item.
type OrderItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	ProductID   string
	Name        string
	VariantName string
	Quantity    int
	UnitPrice   int64
	LineTotal   int64
}

// TableName specifies the database table name for order line items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			ID:          item.ID().Bytes(),
			OrderID:     aggregate.ID().Bytes(),
			ProductID:   item.ProductID(),
			Name:        item.Name(),
			VariantName: item.VariantName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
			LineTotal:   item.LineTotal(),
		})
	}

	customer := aggregate.Customer()
	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		OrderNumber: aggregate.OrderNumber(),
		Customer: CustomerDTO{
			Name:    customer.Name(),
			Phone:   customer.Phone().String(),
			Address: customer.Address(),
			City:    customer.City(),
		},
		Status:               int(aggregate.Status()),
		PaymentStatus:        int(aggregate.PaymentStatus()),
		PaymentMethod:        string(aggregate.PaymentMethod()),
		Subtotal:             aggregate.Subtotal(),
		DiscountAmount:       aggregate.DiscountAmount(),
		DeliveryCharge:       aggregate.DeliveryCharge(),
		TotalAmount:          aggregate.TotalAmount(),
		PartialPaymentAmount: aggregate.PartialPaymentAmount(),
		CouponCode:           aggregate.CouponCode(),
		ConsignmentID:        aggregate.ConsignmentID(),
		TrackingCode:         aggregate.TrackingCode(),
		CourierStatus:        aggregate.CourierStatus(),
		Items:                items,
		CreatedAt:            aggregate.CreatedAt(),
		UpdatedAt:            aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	phone, err := kernel.NewPhone(dto.Customer.Phone)
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(dto.Customer.Name, phone, dto.Customer.Address, dto.Customer.City)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.RestoreItem(
			itemID, itemDTO.ProductID, itemDTO.Name, itemDTO.VariantName,
			itemDTO.Quantity, itemDTO.UnitPrice, itemDTO.LineTotal)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		customer,
		items,
		pricing.Result{
			Subtotal:       dto.Subtotal,
			DiscountAmount: dto.DiscountAmount,
			DeliveryCharge: dto.DeliveryCharge,
			Total:          dto.TotalAmount,
			PartialAmount:  dto.PartialPaymentAmount,
		},
		order.PaymentMethod(dto.PaymentMethod),
		dto.CouponCode,
		order.Status(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
		dto.ConsignmentID, dto.TrackingCode, dto.CourierStatus,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
