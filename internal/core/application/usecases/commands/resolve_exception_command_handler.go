package commands

import (
	"context"

	"preclear/internal/core/domain/model/audit"
	"preclear/internal/core/domain/model/exception"
)

// ResolveExceptionResult reports whether this call performed the resolution.
type ResolveExceptionResult struct {
	Exception *exception.Exception
	Changed   bool
}

// ResolveExceptionCommandHandler resolves an exception once. Later calls
// succeed and return the exception as first resolved, writing nothing.
type ResolveExceptionCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewResolveExceptionCommandHandler(uowFactory UoWFactory) ResolveExceptionCommandHandler {
	return ResolveExceptionCommandHandler{
		uowFactory: uowFactory,
		clock:      systemClock,
	}
}

func (h ResolveExceptionCommandHandler) WithClock(clock Clock) ResolveExceptionCommandHandler {
	h.clock = clock
	return h
}

func (h ResolveExceptionCommandHandler) Handle(ctx context.Context, cmd ResolveExceptionCommand) (ResolveExceptionResult, error) {
	if err := cmd.Validate(); err != nil {
		return ResolveExceptionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ResolveExceptionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	e, err := uow.ExceptionRepository().GetForUpdate(ctx, cmd.ExceptionID())
	if err != nil {
		return ResolveExceptionResult{}, err
	}

	now := h.clock()
	if !e.Resolve(cmd.ActorID(), now) {
		return ResolveExceptionResult{Exception: e}, nil
	}

	if err = uow.ExceptionRepository().Update(ctx, e); err != nil {
		return ResolveExceptionResult{}, err
	}

	entry, err := audit.ExceptionResolved(cmd.ActorID(), e.ShipmentID(), e.Code(), now)
	if err != nil {
		return ResolveExceptionResult{}, err
	}

	if err = uow.AuditLogRepository().Append(ctx, entry); err != nil {
		return ResolveExceptionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ResolveExceptionResult{}, err
	}

	return ResolveExceptionResult{Exception: e, Changed: true}, nil
}
