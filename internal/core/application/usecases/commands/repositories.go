// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"alltown/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories its transaction touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// TenantRepoFactory provides access to the tenant repository within a transaction.
	TenantRepoFactory interface {
		TenantRepository() ports.TenantRepository
	}

	// DriverRepoFactory provides access to the driver repository within a transaction.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// LoyaltyLedgerFactory provides access to the loyalty ledger within a transaction.
	LoyaltyLedgerFactory interface {
		LoyaltyLedger() ports.LoyaltyLedger
	}

	// DeliveryUoW manages transactions for delivery writes that may also touch
	// the loyalty ledger (creation spending a credit, completion awarding one).
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
		LoyaltyLedgerFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// ClaimUoW manages transactions for claim operations, which read the
	// acting profile and conditionally write the delivery.
	ClaimUoW interface {
		TxManager
		DeliveryRepoFactory
		DriverRepoFactory
	}

	// ClaimUoWFactory creates new claim unit of work instances.
	ClaimUoWFactory interface {
		Create() ClaimUoW
	}

	// AdvanceUoW manages transactions for lifecycle transitions: the acting
	// profile is read, the delivery is written, and completion credits the
	// loyalty ledger in the same transaction.
	AdvanceUoW interface {
		TxManager
		DeliveryRepoFactory
		DriverRepoFactory
		LoyaltyLedgerFactory
	}

	// AdvanceUoWFactory creates new advance unit of work instances.
	AdvanceUoWFactory interface {
		Create() AdvanceUoW
	}

	// TenantUoW manages transactions for administrative tenant writes.
	TenantUoW interface {
		TxManager
		TenantRepoFactory
	}

	// TenantUoWFactory creates new tenant unit of work instances.
	TenantUoWFactory interface {
		Create() TenantUoW
	}
)

// TenantCacheInvalidator drops cached tenant resolutions after an
// administrative tenant mutation.
type TenantCacheInvalidator interface {
	ClearAll()
}
