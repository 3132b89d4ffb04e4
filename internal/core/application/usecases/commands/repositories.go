// Package commands contains business operations that modify system state.
// Every command follows the same pattern: constructor validation, a unit of
// work with the affected shipment row locked, domain calls, persistence and
// one audit entry, then commit. All business failures are decided before
// the first write.
package commands

import (
	"context"
	"time"

	"preclear/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// ExceptionRepoFactory provides access to the exception repository within a transaction.
	ExceptionRepoFactory interface {
		ExceptionRepository() ports.ExceptionRepository
	}

	// AuditLogRepoFactory provides access to the audit log within a transaction.
	AuditLogRepoFactory interface {
		AuditLogRepository() ports.AuditLogRepository
	}

	// ShipmentUoW manages transactions for operations that only touch the
	// shipment row and its audit trail.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
		AuditLogRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// UoW manages transactions across shipments, exceptions and the audit log.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   s, err := uow.ShipmentRepository().GetForUpdate(ctx, id)
	//   open, err := uow.ExceptionRepository().ListUnresolved(ctx, id)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ShipmentRepoFactory
		ExceptionRepoFactory
		AuditLogRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-entity operations.
	UoWFactory interface {
		Create() UoW
	}
)

// Clock supplies the current time to handlers.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}
