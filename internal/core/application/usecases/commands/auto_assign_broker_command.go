package commands

import (
	"errors"

	"preclear/internal/pkg/guard"
)

var ErrAutoAssignBrokerCommandIsNotConstructed = errors.New(
	"AutoAssignBrokerCommand must be created via NewAutoAssignBrokerCommand constructor",
)

// AutoAssignBrokerCommand picks the oldest shipment waiting in review without
// a broker and assigns it to the least-loaded broker.
type AutoAssignBrokerCommand struct {
	guard guard.ConstructorGuard
}

// NewAutoAssignBrokerCommand creates the parameterless command.
func NewAutoAssignBrokerCommand() AutoAssignBrokerCommand {
	return AutoAssignBrokerCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c AutoAssignBrokerCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignBrokerCommandIsNotConstructed)
}
