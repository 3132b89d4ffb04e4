package queries

import (
	"errors"

	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/pkg/guard"
)

var ErrListAuditEntriesQueryIsNotConstructed = errors.New(
	"ListAuditEntriesQuery must be created via NewListAuditEntriesByShipmentQuery or NewListAuditEntriesByUserQuery",
)

// AuditFilter selects whether entries are keyed by shipment or by actor.
type AuditFilter int

const (
	ByShipment AuditFilter = iota + 1
	ByUser
)

// ListAuditEntriesQuery reads the audit trail of a shipment or of a user.
type ListAuditEntriesQuery struct {
	filter AuditFilter
	id     kernel.ID
	guard  guard.ConstructorGuard
}

func NewListAuditEntriesByShipmentQuery(shipmentID kernel.ID) (ListAuditEntriesQuery, error) {
	return newListAuditEntriesQuery(ByShipment, shipmentID)
}

func NewListAuditEntriesByUserQuery(userID kernel.ID) (ListAuditEntriesQuery, error) {
	return newListAuditEntriesQuery(ByUser, userID)
}

func newListAuditEntriesQuery(filter AuditFilter, id kernel.ID) (ListAuditEntriesQuery, error) {
	if err := id.Validate(); err != nil {
		return ListAuditEntriesQuery{}, err
	}
	return ListAuditEntriesQuery{filter: filter, id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAuditEntriesQuery) Validate() error {
	return q.guard.Validate(ErrListAuditEntriesQueryIsNotConstructed)
}

func (q ListAuditEntriesQuery) Filter() AuditFilter { return q.filter }
func (q ListAuditEntriesQuery) ID() kernel.ID       { return q.id }
