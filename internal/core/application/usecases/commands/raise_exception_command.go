package commands

import (
	"errors"
	"strings"

	"preclear/internal/core/domain/model/exception"
	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/pkg/errs"
	"preclear/internal/pkg/guard"
)

var ErrRaiseExceptionCommandIsNotConstructed = errors.New(
	"RaiseExceptionCommand must be created via NewRaiseExceptionCommand constructor",
)

// RaiseExceptionCommand records a compliance problem against a shipment.
type RaiseExceptionCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.ID
	code       string
	message    string
	severity   exception.Severity
	actorID    *kernel.ID

	guard guard.ConstructorGuard
}

// NewRaiseExceptionCommand validates the input. An empty severity defaults to warning.
func NewRaiseExceptionCommand(
	shipmentID kernel.ID,
	code, message, severity string,
	actorID *kernel.ID,
) (RaiseExceptionCommand, error) {
	cmd := RaiseExceptionCommand{
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setCode(code),
		cmd.setMessage(message),
		cmd.setSeverity(severity),
	); err != nil {
		return RaiseExceptionCommand{}, err
	}

	return cmd, nil
}

func (c RaiseExceptionCommand) Validate() error {
	return c.guard.Validate(ErrRaiseExceptionCommandIsNotConstructed)
}

func (c RaiseExceptionCommand) ShipmentID() kernel.ID        { return c.shipmentID }
func (c RaiseExceptionCommand) Code() string                 { return c.code }
func (c RaiseExceptionCommand) Message() string              { return c.message }
func (c RaiseExceptionCommand) Severity() exception.Severity { return c.severity }
func (c RaiseExceptionCommand) ActorID() *kernel.ID          { return c.actorID }

func (c *RaiseExceptionCommand) setShipmentID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("shipment id is invalid", err)
	}
	c.shipmentID = id
	return nil
}

func (c *RaiseExceptionCommand) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	c.code = code
	return nil
}

func (c *RaiseExceptionCommand) setMessage(message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return errs.NewValueIsRequiredError("message")
	}
	c.message = message
	return nil
}

func (c *RaiseExceptionCommand) setSeverity(severity string) error {
	parsed, err := exception.ParseSeverity(severity)
	if err != nil {
		return err
	}
	c.severity = parsed
	return nil
}
