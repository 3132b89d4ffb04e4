package commands

import (
	"context"
	"errors"

	"preclear/internal/core/domain/model/audit"
	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/core/domain/services"
	"preclear/internal/core/ports"
	"preclear/internal/pkg/errs"
)

var (
	ErrNoShipmentAwaitingBroker = errors.New("no shipment awaiting broker")
	ErrNoBrokersAvailable       = errors.New("no brokers available")
)

// AutoAssignBrokerResult names the shipment and the broker chosen for it.
type AutoAssignBrokerResult struct {
	ShipmentID kernel.ID
	BrokerID   kernel.ID
}

// AutoAssignBrokerCommandHandler dispatches one waiting shipment per call.
// The audit entry has no actor since the system makes the choice.
type AutoAssignBrokerCommandHandler struct {
	uowFactory ShipmentUoWFactory
	brokers    ports.BrokerDirectory
	dispatcher services.BrokerDispatcher
	clock      Clock
}

func NewAutoAssignBrokerCommandHandler(
	uowFactory ShipmentUoWFactory,
	brokers ports.BrokerDirectory,
	dispatcher services.BrokerDispatcher,
) AutoAssignBrokerCommandHandler {
	return AutoAssignBrokerCommandHandler{
		uowFactory: uowFactory,
		brokers:    brokers,
		dispatcher: dispatcher,
		clock:      systemClock,
	}
}

func (h AutoAssignBrokerCommandHandler) WithClock(clock Clock) AutoAssignBrokerCommandHandler {
	h.clock = clock
	return h
}

// Handle returns ErrNoShipmentAwaitingBroker when nothing waits and
// ErrNoBrokersAvailable when the directory is empty.
func (h AutoAssignBrokerCommandHandler) Handle(ctx context.Context, cmd AutoAssignBrokerCommand) (AutoAssignBrokerResult, error) {
	if err := cmd.Validate(); err != nil {
		return AutoAssignBrokerResult{}, err
	}

	brokerIDs, err := h.brokers.Brokers(ctx)
	if err != nil {
		return AutoAssignBrokerResult{}, err
	}
	if len(brokerIDs) == 0 {
		return AutoAssignBrokerResult{}, ErrNoBrokersAvailable
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return AutoAssignBrokerResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()

	s, err := shipmentRepo.GetFirstAwaitingBroker(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return AutoAssignBrokerResult{}, ErrNoShipmentAwaitingBroker
	}
	if err != nil {
		return AutoAssignBrokerResult{}, err
	}

	counts, err := shipmentRepo.CountActiveByBroker(ctx, brokerIDs)
	if err != nil {
		return AutoAssignBrokerResult{}, err
	}

	loads := make([]services.BrokerLoad, 0, len(brokerIDs))
	for _, id := range brokerIDs {
		loads = append(loads, services.BrokerLoad{BrokerID: id, ActiveShipments: counts[id]})
	}

	now := h.clock()
	brokerID, err := h.dispatcher.Dispatch(s, loads, now)
	if err != nil {
		return AutoAssignBrokerResult{}, err
	}

	if err = shipmentRepo.Update(ctx, s); err != nil {
		return AutoAssignBrokerResult{}, err
	}

	entry, err := audit.BrokerAssigned(nil, s.ID(), brokerID, now)
	if err != nil {
		return AutoAssignBrokerResult{}, err
	}

	if err = uow.AuditLogRepository().Append(ctx, entry); err != nil {
		return AutoAssignBrokerResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AutoAssignBrokerResult{}, err
	}

	return AutoAssignBrokerResult{ShipmentID: s.ID(), BrokerID: brokerID}, nil
}
