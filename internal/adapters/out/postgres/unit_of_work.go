// Package postgres provides the GORM-based Unit of Work and schema migration
// for the workflow store.
//
// Every mutating command follows the same shape:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	s, err := uow.ShipmentRepository().GetForUpdate(ctx, id) // row lock
//	...
//	if err := uow.AuditLogRepository().Append(ctx, entry); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Begin applies SET LOCAL lock_timeout when the factory is configured with
// one, so waiting on a contended row ends with a ConcurrencyConflictError
// instead of blocking the request indefinitely.
package postgres

import (
	"context"
	"fmt"
	"time"

	"preclear/internal/adapters/out/postgres/auditrepo"
	"preclear/internal/adapters/out/postgres/exceptionrepo"
	"preclear/internal/adapters/out/postgres/pgerr"
	"preclear/internal/adapters/out/postgres/shiprepo"
	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.ID
	Aggregate any
}

// Option configures a GormUnitOfWorkFactory.
type Option func(*GormUnitOfWorkFactory)

// WithLockTimeout bounds how long a transaction waits for a row lock.
// Zero disables the bound.
func WithLockTimeout(d time.Duration) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.lockTimeout = d
	}
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, WithLockTimeout(3*time.Second))
func NewGormUnitOfWorkFactory(db *gorm.DB, opts ...Option) *GormUnitOfWorkFactory {
	f := &GormUnitOfWorkFactory{db: db}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create produces a fresh unit of work with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm is Create with the concrete type, for callers that need
// tracked aggregates.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		lockTimeout:       f.lockTimeout,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the
// aggregates written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	lockTimeout       time.Duration
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling Begin on an active unit of work is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if uow.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = %d", uow.lockTimeout.Milliseconds())
		if err := tx.Exec(stmt).Error; err != nil {
			_ = tx.Rollback().Error
			return err
		}
	}

	uow.tx = tx
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit finalizes the transaction. Serialization failures surface as
// errs.ConcurrencyConflictError.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return pgerr.Translate(err, "transaction", nil)
}

// Rollback discards the transaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// ShipmentRepository returns a repository bound to the current transaction,
// or to the pool when no transaction is active.
func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shiprepo.NewGormShipmentRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ExceptionRepository() ports.ExceptionRepository {
	return exceptionrepo.NewGormExceptionRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) AuditLogRepository() ports.AuditLogRepository {
	return auditrepo.NewGormAuditLogRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after each successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.ID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedCount reports how many aggregate writes the current transaction made.
func (uow *GormUnitOfWork) TrackedCount() int {
	return len(uow.trackedAggregates)
}
