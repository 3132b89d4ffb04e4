package queries

import (
	"errors"

	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/pkg/guard"
)

var ErrListExceptionsQueryIsNotConstructed = errors.New(
	"ListExceptionsQuery must be created via NewListExceptionsQuery constructor",
)

// ListExceptionsQuery lists the exceptions of a shipment. With openOnly set
// resolved exceptions are left out.
type ListExceptionsQuery struct {
	shipmentID kernel.ID
	openOnly   bool
	guard      guard.ConstructorGuard
}

func NewListExceptionsQuery(shipmentID kernel.ID, openOnly bool) (ListExceptionsQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return ListExceptionsQuery{}, err
	}
	return ListExceptionsQuery{
		shipmentID: shipmentID,
		openOnly:   openOnly,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListExceptionsQuery) Validate() error {
	return q.guard.Validate(ErrListExceptionsQueryIsNotConstructed)
}

func (q ListExceptionsQuery) ShipmentID() kernel.ID { return q.shipmentID }
func (q ListExceptionsQuery) OpenOnly() bool        { return q.openOnly }
