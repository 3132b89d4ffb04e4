package commands

import (
	"errors"
	"strings"

	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/core/domain/model/shipment"
	"preclear/internal/pkg/errs"
	"preclear/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// ShipmentDetailsInput carries the raw, shipper-provided descriptive fields.
// Empty mode, type and carrier fall back to ground, international and UPS.
type ShipmentDetailsInput struct {
	Mode        string
	Type        string
	Carrier     string
	TotalValue  *float64
	TotalWeight *float64
	Currency    string
}

// CreateShipmentCommand registers a new draft shipment.
//
// Example:
//
//	cmd, err := NewCreateShipmentCommand(&actor, ownerID, "Laptops", ShipmentDetailsInput{Mode: "air"})
//	if err != nil {
//	    return fmt.Errorf("invalid shipment data: %w", err)
//	}
//	s, err := handler.Handle(ctx, cmd)
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	actorID *kernel.ID
	ownerID kernel.ID
	name    string
	details shipment.Details

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand validates the owner, the name and every detail value.
func NewCreateShipmentCommand(
	actorID *kernel.ID,
	ownerID kernel.ID,
	name string,
	details ShipmentDetailsInput,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwnerID(ownerID),
		cmd.setName(name),
		cmd.setDetails(details),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) ActorID() *kernel.ID       { return c.actorID }
func (c CreateShipmentCommand) OwnerID() kernel.ID        { return c.ownerID }
func (c CreateShipmentCommand) Name() string              { return c.name }
func (c CreateShipmentCommand) Details() shipment.Details { return c.details }

func (c *CreateShipmentCommand) setOwnerID(ownerID kernel.ID) error {
	if ownerID == 0 {
		return errs.NewValueIsRequiredError("owner id")
	}
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("owner id is invalid", err)
	}

	c.ownerID = ownerID
	return nil
}

func (c *CreateShipmentCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("shipment name")
	}

	c.name = name
	return nil
}

func (c *CreateShipmentCommand) setDetails(in ShipmentDetailsInput) error {
	mode, modeErr := shipment.ParseMode(in.Mode)
	shipmentType, typeErr := shipment.ParseType(in.Type)
	summary, summaryErr := shipment.NewSummary(in.TotalValue, in.TotalWeight, in.Currency)
	if err := errors.Join(modeErr, typeErr, summaryErr); err != nil {
		return err
	}

	carrier := strings.TrimSpace(in.Carrier)
	if carrier == "" {
		carrier = shipment.DefaultCarrier
	}

	c.details = shipment.Details{
		Mode:    mode,
		Type:    shipmentType,
		Carrier: carrier,
		Summary: summary,
	}
	return nil
}
