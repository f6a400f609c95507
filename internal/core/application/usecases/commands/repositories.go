// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"storefront/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DraftRepoFactory provides access to the draft repository within a transaction.
	DraftRepoFactory interface {
		DraftRepository() ports.DraftRepository
	}

	// CouponRepoFactory provides access to the coupon repository within a transaction.
	CouponRepoFactory interface {
		CouponRepository() ports.CouponRepository
	}

	// ZoneRepoFactory provides access to the zone repository within a transaction.
	ZoneRepoFactory interface {
		ZoneRepository() ports.ZoneRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used by commands that mutate a single order aggregate.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DraftUoW manages transactions for draft-only operations.
	DraftUoW interface {
		TxManager
		DraftRepoFactory
	}

	// DraftUoWFactory creates new draft unit of work instances.
	DraftUoWFactory interface {
		Create() DraftUoW
	}

	// CheckoutUoW manages the checkout transaction: the new order with its
	// items, the draft conversion, and the coupon usage counter all commit
	// or roll back together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   draftRepo := uow.DraftRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		DraftRepoFactory
		CouponRepoFactory
		ZoneRepoFactory
	}

	// CheckoutUoWFactory creates new unit of work instances for checkout.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}
)
