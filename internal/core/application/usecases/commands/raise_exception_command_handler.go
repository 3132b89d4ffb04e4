package commands

import (
	"context"

	"preclear/internal/core/domain/model/audit"
	"preclear/internal/core/domain/model/exception"
)

// RaiseExceptionCommandHandler creates an exception while holding the
// shipment row lock, so it serializes with a concurrent approval.
type RaiseExceptionCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewRaiseExceptionCommandHandler(uowFactory UoWFactory) RaiseExceptionCommandHandler {
	return RaiseExceptionCommandHandler{
		uowFactory: uowFactory,
		clock:      systemClock,
	}
}

func (h RaiseExceptionCommandHandler) WithClock(clock Clock) RaiseExceptionCommandHandler {
	h.clock = clock
	return h
}

// Handle returns errs.ObjectNotFoundError when the shipment does not exist.
func (h RaiseExceptionCommandHandler) Handle(ctx context.Context, cmd RaiseExceptionCommand) (*exception.Exception, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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
	e, err := exception.NewException(s.ID(), cmd.Code(), cmd.Message(), cmd.Severity(), cmd.ActorID(), now)
	if err != nil {
		return nil, err
	}

	if err = uow.ExceptionRepository().Add(ctx, e); err != nil {
		return nil, err
	}

	entry, err := audit.ExceptionCreated(cmd.ActorID(), s.ID(), e.Code(), now)
	if err != nil {
		return nil, err
	}

	if err = uow.AuditLogRepository().Append(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return e, nil
}
