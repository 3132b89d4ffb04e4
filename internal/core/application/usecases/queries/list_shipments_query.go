package queries

import (
	"errors"

	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/pkg/guard"
)

var ErrListShipmentsQueryIsNotConstructed = errors.New(
	"ListShipmentsQuery must be created via NewListShipmentsByOwnerQuery or NewListShipmentsByBrokerQuery",
)

// ShipmentFilter selects the column a shipment list is keyed on.
type ShipmentFilter int

const (
	ByOwner ShipmentFilter = iota + 1
	ByBroker
)

// ListShipmentsQuery lists the shipments of one owner or one broker, newest
// first.
type ListShipmentsQuery struct {
	filter ShipmentFilter
	id     kernel.ID
	guard  guard.ConstructorGuard
}

func NewListShipmentsByOwnerQuery(ownerID kernel.ID) (ListShipmentsQuery, error) {
	return newListShipmentsQuery(ByOwner, ownerID)
}

func NewListShipmentsByBrokerQuery(brokerID kernel.ID) (ListShipmentsQuery, error) {
	return newListShipmentsQuery(ByBroker, brokerID)
}

func newListShipmentsQuery(filter ShipmentFilter, id kernel.ID) (ListShipmentsQuery, error) {
	if err := id.Validate(); err != nil {
		return ListShipmentsQuery{}, err
	}
	return ListShipmentsQuery{filter: filter, id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q ListShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentsQueryIsNotConstructed)
}

func (q ListShipmentsQuery) Filter() ShipmentFilter { return q.filter }
func (q ListShipmentsQuery) ID() kernel.ID          { return q.id }
