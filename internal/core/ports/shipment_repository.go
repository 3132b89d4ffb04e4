// Package ports defines the contracts between the workflow core and its
// infrastructure: repositories, the unit of work and outbound collaborators.
package ports

import (
	"context"

	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
// Shipments are never deleted.
type ShipmentRepository interface {
	// Add persists a new shipment and binds the store-generated id to it.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment by id without locking it.
	Get(ctx context.Context, id kernel.ID) (*shipment.Shipment, error)

	// GetForUpdate retrieves a shipment and holds its row lock until the
	// surrounding transaction ends. Every mutation of an existing shipment
	// goes through this method.
	GetForUpdate(ctx context.Context, id kernel.ID) (*shipment.Shipment, error)

	// GetFirstAwaitingBroker locks the oldest under_review shipment without a
	// broker, skipping rows locked by other transactions.
	GetFirstAwaitingBroker(ctx context.Context) (*shipment.Shipment, error)

	// CountActiveByBroker returns the number of non-terminal shipments held by
	// each of brokerIDs. Brokers without shipments are reported with zero.
	CountActiveByBroker(ctx context.Context, brokerIDs []kernel.ID) (map[kernel.ID]int, error)
}
