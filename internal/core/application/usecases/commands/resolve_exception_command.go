package commands

import (
	"errors"

	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/pkg/errs"
	"preclear/internal/pkg/guard"
)

var ErrResolveExceptionCommandIsNotConstructed = errors.New(
	"ResolveExceptionCommand must be created via NewResolveExceptionCommand constructor",
)

// ResolveExceptionCommand marks an exception as resolved.
type ResolveExceptionCommand struct {
	exceptionID kernel.ID
	actorID     *kernel.ID

	guard guard.ConstructorGuard
}

func NewResolveExceptionCommand(exceptionID kernel.ID, actorID *kernel.ID) (ResolveExceptionCommand, error) {
	if err := exceptionID.Validate(); err != nil {
		return ResolveExceptionCommand{}, errs.NewValueIsInvalidErrorWithCause("exception id is invalid", err)
	}

	return ResolveExceptionCommand{
		exceptionID: exceptionID,
		actorID:     actorID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ResolveExceptionCommand) Validate() error {
	return c.guard.Validate(ErrResolveExceptionCommandIsNotConstructed)
}

func (c ResolveExceptionCommand) ExceptionID() kernel.ID { return c.exceptionID }
func (c ResolveExceptionCommand) ActorID() *kernel.ID    { return c.actorID }
