// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. A unit of work spans one business transaction: the repositories it
// hands out all run on the same database transaction, and every aggregate
// they touch is tracked for post-commit processing.
//
// Basic usage:
//
//	factory := NewGormUnitOfWorkFactory(db, loyaltyThreshold)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.DeliveryRepository().Add(ctx, request); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each business operation gets its own UnitOfWork instance; instances are not
// safe for concurrent use.
package postgres

import (
	"context"

	"alltown/internal/adapters/out/postgres/deliveryrepo"
	"alltown/internal/adapters/out/postgres/driverrepo"
	"alltown/internal/adapters/out/postgres/loyaltyrepo"
	"alltown/internal/adapters/out/postgres/tenantrepo"
	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// connection pool. The loyalty threshold is fixed at construction so every
// ledger handed out converts points identically.
type GormUnitOfWorkFactory struct {
	db               *gorm.DB
	loyaltyThreshold int
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB, loyaltyThreshold int) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:               db,
		loyaltyThreshold: loyaltyThreshold,
	}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		loyaltyThreshold:  f.loyaltyThreshold,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction and tracks aggregate
// changes for one business operation.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	loyaltyThreshold  int
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction. Repeated calls on the same
// instance are no-ops; nested transactions are never created.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction when no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction when no transaction is active.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// conn returns the active transaction, or the pool when none was begun.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// DeliveryRepository returns a DeliveryRepository bound to the current
// transaction.
func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(uow.conn(), uow)
}

// TenantRepository returns a TenantRepository bound to the current
// transaction.
func (uow *GormUnitOfWork) TenantRepository() ports.TenantRepository {
	return tenantrepo.NewGormTenantRepository(uow.conn(), uow)
}

// DriverRepository returns a DriverRepository bound to the current
// transaction.
func (uow *GormUnitOfWork) DriverRepository() ports.DriverRepository {
	return driverrepo.NewGormDriverRepository(uow.conn(), uow)
}

// LoyaltyLedger returns a LoyaltyLedger bound to the current transaction.
func (uow *GormUnitOfWork) LoyaltyLedger() ports.LoyaltyLedger {
	return loyaltyrepo.NewGormLoyaltyLedger(uow.conn(), uow.loyaltyThreshold)
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Called by repository implementations on adds and updates.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns the aggregates touched during this unit of work,
// in the order they were written.
func (uow *GormUnitOfWork) TrackedAggregates() []trackedAggregate {
	return uow.trackedAggregates
}
