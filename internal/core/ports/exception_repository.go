package ports

import (
	"context"

	"preclear/internal/core/domain/model/exception"
	"preclear/internal/core/domain/model/kernel"
)

// ExceptionRepository defines the persistence contract for compliance exceptions.
type ExceptionRepository interface {
	// Add persists a new exception and binds the store-generated id to it.
	Add(ctx context.Context, e *exception.Exception) error

	// Update persists the resolution of an existing exception.
	Update(ctx context.Context, e *exception.Exception) error

	// GetForUpdate retrieves an exception and locks its row.
	GetForUpdate(ctx context.Context, id kernel.ID) (*exception.Exception, error)

	// ListUnresolved returns the unresolved exceptions of a shipment, newest first.
	ListUnresolved(ctx context.Context, shipmentID kernel.ID) ([]*exception.Exception, error)
}
