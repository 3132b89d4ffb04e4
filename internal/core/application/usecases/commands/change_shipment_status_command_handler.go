package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"preclear/internal/core/domain/model/audit"
	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/core/domain/model/shipment"
	"preclear/internal/core/ports"
)

var (
	// ErrBlockedByOpenExceptions is the sentinel behind BlockedByOpenExceptionsError.
	ErrBlockedByOpenExceptions = errors.New("approval blocked by open exceptions")

	// ErrRequiredDocumentsMissing is returned when the document checker refuses approval.
	ErrRequiredDocumentsMissing = errors.New("required documents missing")
)

// BlockedByOpenExceptionsError lists the unresolved error-severity exceptions
// that stop a shipment from being approved.
type BlockedByOpenExceptionsError struct {
	ShipmentID kernel.ID
	Codes      []string
}

func (e *BlockedByOpenExceptionsError) Error() string {
	return fmt.Sprintf("%s: shipment %s has unresolved error exceptions: %s",
		ErrBlockedByOpenExceptions, e.ShipmentID, strings.Join(e.Codes, ", "))
}

func (e *BlockedByOpenExceptionsError) Unwrap() error {
	return ErrBlockedByOpenExceptions
}

// ChangeShipmentStatusResult reports the outcome of a status change.
type ChangeShipmentStatusResult struct {
	Shipment   *shipment.Shipment
	Transition shipment.Transition
}

// Changed is false when the shipment was already in the requested status.
func (r ChangeShipmentStatusResult) Changed() bool {
	return r.Transition.Changed()
}

// ChangeShipmentStatusCommandHandler applies one transition under the
// shipment row lock. Approval is gated on open error exceptions and, when a
// checker is configured, on required documents.
type ChangeShipmentStatusCommandHandler struct {
	uowFactory UoWFactory
	documents  ports.DocumentChecker
	clock      Clock
}

// NewChangeShipmentStatusCommandHandler creates the handler. documents may be nil.
func NewChangeShipmentStatusCommandHandler(
	uowFactory UoWFactory,
	documents ports.DocumentChecker,
) ChangeShipmentStatusCommandHandler {
	return ChangeShipmentStatusCommandHandler{
		uowFactory: uowFactory,
		documents:  documents,
		clock:      systemClock,
	}
}

func (h ChangeShipmentStatusCommandHandler) WithClock(clock Clock) ChangeShipmentStatusCommandHandler {
	h.clock = clock
	return h
}

// Handle performs the transition.
//
// A request for the current status commits nothing and returns a result with
// Changed() == false. Errors:
//   - errs.ObjectNotFoundError when the shipment does not exist
//   - *shipment.TransitionNotAllowedError when the edge is missing
//   - *BlockedByOpenExceptionsError or ErrRequiredDocumentsMissing on approval
func (h ChangeShipmentStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeShipmentStatusCommand,
) (ChangeShipmentStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeShipmentStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChangeShipmentStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.ShipmentRepository().GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return ChangeShipmentStatusResult{}, err
	}

	if s.Status() == cmd.Target() {
		return ChangeShipmentStatusResult{
			Shipment:   s,
			Transition: shipment.Transition{From: s.Status(), To: s.Status()},
		}, nil
	}

	if _, err = s.Status().TransitionTo(cmd.Target()); err != nil {
		return ChangeShipmentStatusResult{}, err
	}

	if cmd.Target() == shipment.Approved {
		if err = h.checkApprovalGate(ctx, uow, s.ID()); err != nil {
			return ChangeShipmentStatusResult{}, err
		}
	}

	now := h.clock()
	transition, err := s.ChangeStatus(cmd.Target(), cmd.Notes(), now)
	if err != nil {
		return ChangeShipmentStatusResult{}, err
	}

	if err = uow.ShipmentRepository().Update(ctx, s); err != nil {
		return ChangeShipmentStatusResult{}, err
	}

	entry, err := audit.StatusChanged(cmd.ActorID(), s.ID(), transition.From, transition.To, now)
	if err != nil {
		return ChangeShipmentStatusResult{}, err
	}

	if err = uow.AuditLogRepository().Append(ctx, entry); err != nil {
		return ChangeShipmentStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ChangeShipmentStatusResult{}, err
	}

	return ChangeShipmentStatusResult{Shipment: s, Transition: transition}, nil
}

func (h ChangeShipmentStatusCommandHandler) checkApprovalGate(ctx context.Context, uow UoW, shipmentID kernel.ID) error {
	open, err := uow.ExceptionRepository().ListUnresolved(ctx, shipmentID)
	if err != nil {
		return err
	}

	var codes []string
	for _, e := range open {
		if e.IsBlocking() {
			codes = append(codes, e.Code())
		}
	}
	if len(codes) > 0 {
		return &BlockedByOpenExceptionsError{ShipmentID: shipmentID, Codes: codes}
	}

	if h.documents == nil {
		return nil
	}

	ok, err := h.documents.HasRequiredDocuments(ctx, shipmentID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: shipment %s", ErrRequiredDocumentsMissing, shipmentID)
	}

	return nil
}
