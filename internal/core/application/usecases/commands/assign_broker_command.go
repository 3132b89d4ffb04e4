package commands

import (
	"errors"

	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/pkg/errs"
	"preclear/internal/pkg/guard"
)

var ErrAssignBrokerCommandIsNotConstructed = errors.New(
	"AssignBrokerCommand must be created via NewAssignBrokerCommand constructor",
)

// AssignBrokerCommand makes a broker responsible for a shipment, replacing
// any previous assignment.
type AssignBrokerCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.ID
	brokerID   kernel.ID
	actorID    *kernel.ID

	guard guard.ConstructorGuard
}

func NewAssignBrokerCommand(shipmentID, brokerID kernel.ID, actorID *kernel.ID) (AssignBrokerCommand, error) {
	cmd := AssignBrokerCommand{
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setBrokerID(brokerID),
	); err != nil {
		return AssignBrokerCommand{}, err
	}

	return cmd, nil
}

func (c AssignBrokerCommand) Validate() error {
	return c.guard.Validate(ErrAssignBrokerCommandIsNotConstructed)
}

func (c AssignBrokerCommand) ShipmentID() kernel.ID { return c.shipmentID }
func (c AssignBrokerCommand) BrokerID() kernel.ID   { return c.brokerID }
func (c AssignBrokerCommand) ActorID() *kernel.ID   { return c.actorID }

func (c *AssignBrokerCommand) setShipmentID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("shipment id is invalid", err)
	}
	c.shipmentID = id
	return nil
}

func (c *AssignBrokerCommand) setBrokerID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("broker id is invalid", err)
	}
	c.brokerID = id
	return nil
}
