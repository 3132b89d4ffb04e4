package queries

import (
	"errors"

	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/pkg/guard"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery fetches a single shipment by id.
//
// Example:
//
//	query, err := NewGetShipmentQuery(42)
//	if err != nil {
//	    return err
//	}
//	view, err := NewGetShipmentQueryHandler(db).Handle(ctx, query)
type GetShipmentQuery struct {
	shipmentID kernel.ID
	guard      guard.ConstructorGuard
}

func NewGetShipmentQuery(shipmentID kernel.ID) (GetShipmentQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}
	return GetShipmentQuery{shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

func (q GetShipmentQuery) ShipmentID() kernel.ID {
	return q.shipmentID
}
