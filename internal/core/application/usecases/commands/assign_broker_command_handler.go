package commands

import (
	"context"
	"fmt"

	"preclear/internal/core/domain/model/audit"
	"preclear/internal/core/domain/model/shipment"
	"preclear/internal/core/ports"
	"preclear/internal/pkg/errs"
)

// AssignBrokerCommandHandler assigns a broker chosen by a caller.
//
// Example:
//
//	handler := NewAssignBrokerCommandHandler(uowFactory, brokers)
//	cmd, _ := NewAssignBrokerCommand(shipmentID, brokerID, &actor)
//	s, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown shipment
//	case errors.Is(err, shipment.ErrBrokerAssignmentNotAllowed):
//	    // shipment already completed or cancelled
//	}
type AssignBrokerCommandHandler struct {
	uowFactory ShipmentUoWFactory
	brokers    ports.BrokerDirectory
	clock      Clock
}

func NewAssignBrokerCommandHandler(uowFactory ShipmentUoWFactory, brokers ports.BrokerDirectory) AssignBrokerCommandHandler {
	return AssignBrokerCommandHandler{
		uowFactory: uowFactory,
		brokers:    brokers,
		clock:      systemClock,
	}
}

func (h AssignBrokerCommandHandler) WithClock(clock Clock) AssignBrokerCommandHandler {
	h.clock = clock
	return h
}

// Handle rejects brokers unknown to the directory as invalid input.
func (h AssignBrokerCommandHandler) Handle(ctx context.Context, cmd AssignBrokerCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	known, err := h.brokers.Exists(ctx, cmd.BrokerID())
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"broker id is invalid", fmt.Errorf("broker %s is not registered", cmd.BrokerID()))
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.ShipmentRepository().GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	now := h.clock()
	if err = s.AssignBroker(cmd.BrokerID(), now); err != nil {
		return nil, err
	}

	if err = uow.ShipmentRepository().Update(ctx, s); err != nil {
		return nil, err
	}

	entry, err := audit.BrokerAssigned(cmd.ActorID(), s.ID(), cmd.BrokerID(), now)
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
