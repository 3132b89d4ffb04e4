package commands

import (
	"context"

	"preclear/internal/core/domain/model/audit"
	"preclear/internal/core/domain/model/shipment"
)

// CreateShipmentCommandHandler persists a new draft shipment together with its
// shipment.created audit entry.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	references *shipment.ReferenceGenerator
	clock      Clock
}

func NewCreateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	references *shipment.ReferenceGenerator,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		references: references,
		clock:      systemClock,
	}
}

// WithClock returns a copy of the handler reading time from clock.
func (h CreateShipmentCommandHandler) WithClock(clock Clock) CreateShipmentCommandHandler {
	h.clock = clock
	return h
}

// Handle creates the shipment. The reference is drawn from the monotonic
// generator; a collision in the store surfaces as an internal error.
func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock()
	s, err := shipment.NewShipment(h.references.Next(now), cmd.OwnerID(), cmd.Name(), cmd.Details(), now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().Add(ctx, s); err != nil {
		return nil, err
	}

	entry, err := audit.ShipmentCreated(cmd.ActorID(), s.ID(), s.Reference().String(), now)
	if err != nil {
		return nil, err
	}

	if err = uow.AuditLogRepository().Append(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
