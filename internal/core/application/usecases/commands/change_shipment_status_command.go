package commands

import (
	"errors"

	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/core/domain/model/shipment"
	"preclear/internal/pkg/errs"
	"preclear/internal/pkg/guard"
)

var ErrChangeShipmentStatusCommandIsNotConstructed = errors.New(
	"ChangeShipmentStatusCommand must be created via NewChangeShipmentStatusCommand constructor",
)

// ChangeShipmentStatusCommand requests a lifecycle transition.
type ChangeShipmentStatusCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.ID
	target     shipment.Status
	actorID    *kernel.ID
	notes      string

	guard guard.ConstructorGuard
}

func NewChangeShipmentStatusCommand(
	shipmentID kernel.ID,
	target shipment.Status,
	actorID *kernel.ID,
	notes string,
) (ChangeShipmentStatusCommand, error) {
	cmd := ChangeShipmentStatusCommand{
		actorID: actorID,
		notes:   notes,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setTarget(target),
	); err != nil {
		return ChangeShipmentStatusCommand{}, err
	}

	return cmd, nil
}

// NewChangeShipmentStatusCommandByName parses target with shipment.ParseStatus.
func NewChangeShipmentStatusCommandByName(
	shipmentID kernel.ID,
	target string,
	actorID *kernel.ID,
	notes string,
) (ChangeShipmentStatusCommand, error) {
	status, err := shipment.ParseStatus(target)
	if err != nil {
		return ChangeShipmentStatusCommand{}, err
	}
	return NewChangeShipmentStatusCommand(shipmentID, status, actorID, notes)
}

func (c ChangeShipmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeShipmentStatusCommandIsNotConstructed)
}

func (c ChangeShipmentStatusCommand) ShipmentID() kernel.ID   { return c.shipmentID }
func (c ChangeShipmentStatusCommand) Target() shipment.Status { return c.target }
func (c ChangeShipmentStatusCommand) ActorID() *kernel.ID     { return c.actorID }
func (c ChangeShipmentStatusCommand) Notes() string           { return c.notes }

func (c *ChangeShipmentStatusCommand) setShipmentID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("shipment id is invalid", err)
	}

	c.shipmentID = id
	return nil
}

func (c *ChangeShipmentStatusCommand) setTarget(target shipment.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
