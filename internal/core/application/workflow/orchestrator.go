package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"preclear/internal/core/application/usecases/commands"
	"preclear/internal/core/domain/model/exception"
	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/core/domain/model/shipment"
	"preclear/internal/core/ports"
)

// Handlers groups the command handlers the orchestrator delegates to.
type Handlers struct {
	CreateShipment   commands.CreateShipmentCommandHandler
	ChangeStatus     commands.ChangeShipmentStatusCommandHandler
	RaiseException   commands.RaiseExceptionCommandHandler
	ResolveException commands.ResolveExceptionCommandHandler
	AssignBroker     commands.AssignBrokerCommandHandler
	AutoAssignBroker commands.AutoAssignBrokerCommandHandler
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

func WithMetrics(m Metrics) Option {
	return func(o *Orchestrator) {
		if m != nil {
			o.metrics = m
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(o *Orchestrator) {
		o.clock = clock
	}
}

// Orchestrator exposes the shipment workflow as a set of verbs.
//
// Example:
//
//	o := workflow.NewOrchestrator(handlers, notifier, logger)
//	result, err := o.Approve(ctx, shipmentID, &brokerID, "documents verified")
//	if errors.Is(err, commands.ErrBlockedByOpenExceptions) {
//	    // resolve the listed exceptions first
//	}
type Orchestrator struct {
	handlers Handlers
	notifier ports.Notifier
	metrics  Metrics
	logger   *slog.Logger
	clock    func() time.Time
}

func NewOrchestrator(handlers Handlers, notifier ports.Notifier, logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		handlers: handlers,
		notifier: notifier,
		metrics:  nopMetrics{},
		logger:   logger.With("component", "workflow"),
		clock:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) Submit(ctx context.Context, id kernel.ID, actor *kernel.ID, notes string) (commands.ChangeShipmentStatusResult, error) {
	return o.transition(ctx, id, shipment.Submitted, actor, notes)
}

func (o *Orchestrator) StartReview(ctx context.Context, id kernel.ID, actor *kernel.ID, notes string) (commands.ChangeShipmentStatusResult, error) {
	return o.transition(ctx, id, shipment.UnderReview, actor, notes)
}

// Approve fails with *commands.BlockedByOpenExceptionsError while any
// unresolved error exception exists.
func (o *Orchestrator) Approve(ctx context.Context, id kernel.ID, actor *kernel.ID, notes string) (commands.ChangeShipmentStatusResult, error) {
	return o.transition(ctx, id, shipment.Approved, actor, notes)
}

func (o *Orchestrator) Reject(ctx context.Context, id kernel.ID, actor *kernel.ID, notes string) (commands.ChangeShipmentStatusResult, error) {
	return o.transition(ctx, id, shipment.Rejected, actor, notes)
}

func (o *Orchestrator) Hold(ctx context.Context, id kernel.ID, actor *kernel.ID, notes string) (commands.ChangeShipmentStatusResult, error) {
	return o.transition(ctx, id, shipment.OnHold, actor, notes)
}

func (o *Orchestrator) Reopen(ctx context.Context, id kernel.ID, actor *kernel.ID, notes string) (commands.ChangeShipmentStatusResult, error) {
	return o.transition(ctx, id, shipment.Reopened, actor, notes)
}

func (o *Orchestrator) Complete(ctx context.Context, id kernel.ID, actor *kernel.ID, notes string) (commands.ChangeShipmentStatusResult, error) {
	return o.transition(ctx, id, shipment.Completed, actor, notes)
}

func (o *Orchestrator) Cancel(ctx context.Context, id kernel.ID, actor *kernel.ID, notes string) (commands.ChangeShipmentStatusResult, error) {
	return o.transition(ctx, id, shipment.Cancelled, actor, notes)
}

// ChangeStatus accepts a status name in any of the spellings
// shipment.ParseStatus understands.
func (o *Orchestrator) ChangeStatus(
	ctx context.Context,
	id kernel.ID,
	target string,
	actor *kernel.ID,
	notes string,
) (commands.ChangeShipmentStatusResult, error) {
	cmd, err := commands.NewChangeShipmentStatusCommandByName(id, target, actor, notes)
	if err != nil {
		return commands.ChangeShipmentStatusResult{}, o.fail(ctx, "change_status", err)
	}
	return o.changeStatus(ctx, cmd)
}

func (o *Orchestrator) transition(
	ctx context.Context,
	id kernel.ID,
	target shipment.Status,
	actor *kernel.ID,
	notes string,
) (commands.ChangeShipmentStatusResult, error) {
	cmd, err := commands.NewChangeShipmentStatusCommand(id, target, actor, notes)
	if err != nil {
		return commands.ChangeShipmentStatusResult{}, o.fail(ctx, "change_status", err)
	}
	return o.changeStatus(ctx, cmd)
}

func (o *Orchestrator) changeStatus(ctx context.Context, cmd commands.ChangeShipmentStatusCommand) (commands.ChangeShipmentStatusResult, error) {
	result, err := o.handlers.ChangeStatus.Handle(ctx, cmd)
	if err != nil {
		return commands.ChangeShipmentStatusResult{}, o.fail(ctx, "change_status", err)
	}
	if !result.Changed() {
		return result, nil
	}

	o.metrics.TransitionApplied(result.Transition.From.String(), result.Transition.To.String())
	if role, ok := recipientFor(result.Transition.To); ok {
		o.notify(ctx, role, result.Shipment.ID(), statusMessage(result.Shipment))
	}
	return result, nil
}

func (o *Orchestrator) CreateShipment(
	ctx context.Context,
	actor *kernel.ID,
	ownerID kernel.ID,
	name string,
	details commands.ShipmentDetailsInput,
) (*shipment.Shipment, error) {
	cmd, err := commands.NewCreateShipmentCommand(actor, ownerID, name, details)
	if err != nil {
		return nil, o.fail(ctx, "create_shipment", err)
	}
	s, err := o.handlers.CreateShipment.Handle(ctx, cmd)
	if err != nil {
		return nil, o.fail(ctx, "create_shipment", err)
	}
	return s, nil
}

func (o *Orchestrator) RaiseException(
	ctx context.Context,
	shipmentID kernel.ID,
	code, message, severity string,
	actor *kernel.ID,
) (*exception.Exception, error) {
	cmd, err := commands.NewRaiseExceptionCommand(shipmentID, code, message, severity, actor)
	if err != nil {
		return nil, o.fail(ctx, "raise_exception", err)
	}
	e, err := o.handlers.RaiseException.Handle(ctx, cmd)
	if err != nil {
		return nil, o.fail(ctx, "raise_exception", err)
	}
	o.notify(ctx, ports.RecipientShipper, shipmentID,
		fmt.Sprintf("%s exception %s raised: %s", e.Severity(), e.Code(), e.Message()))
	return e, nil
}

// ResolveException succeeds for an exception that is already resolved and
// returns it unchanged.
func (o *Orchestrator) ResolveException(ctx context.Context, exceptionID kernel.ID, actor *kernel.ID) (*exception.Exception, error) {
	cmd, err := commands.NewResolveExceptionCommand(exceptionID, actor)
	if err != nil {
		return nil, o.fail(ctx, "resolve_exception", err)
	}
	result, err := o.handlers.ResolveException.Handle(ctx, cmd)
	if err != nil {
		return nil, o.fail(ctx, "resolve_exception", err)
	}
	return result.Exception, nil
}

func (o *Orchestrator) AssignBroker(ctx context.Context, shipmentID, brokerID kernel.ID, actor *kernel.ID) (*shipment.Shipment, error) {
	cmd, err := commands.NewAssignBrokerCommand(shipmentID, brokerID, actor)
	if err != nil {
		return nil, o.fail(ctx, "assign_broker", err)
	}
	s, err := o.handlers.AssignBroker.Handle(ctx, cmd)
	if err != nil {
		return nil, o.fail(ctx, "assign_broker", err)
	}
	o.notify(ctx, ports.RecipientBroker, s.ID(), fmt.Sprintf("shipment %s assigned to you", s.Reference()))
	return s, nil
}

// AutoAssignBroker dispatches the oldest shipment waiting for a broker. It
// returns commands.ErrNoShipmentAwaitingBroker or commands.ErrNoBrokersAvailable
// when there is nothing to do.
func (o *Orchestrator) AutoAssignBroker(ctx context.Context) (commands.AutoAssignBrokerResult, error) {
	result, err := o.handlers.AutoAssignBroker.Handle(ctx, commands.NewAutoAssignBrokerCommand())
	if err != nil {
		return commands.AutoAssignBrokerResult{}, err
	}
	o.notify(ctx, ports.RecipientBroker, result.ShipmentID,
		fmt.Sprintf("shipment %s assigned to broker %s", result.ShipmentID, result.BrokerID))
	return result, nil
}

func (o *Orchestrator) fail(ctx context.Context, operation string, err error) error {
	kind := Classify(err)
	o.metrics.OperationFailed(operation, kind)
	if kind == KindInternal || kind == KindConcurrencyConflict {
		o.logger.ErrorContext(ctx, "Workflow operation failed", "operation", operation, "error", err)
	}
	return err
}

func (o *Orchestrator) notify(ctx context.Context, role ports.RecipientRole, shipmentID kernel.ID, message string) {
	n := ports.NewNotification(role, shipmentID, message, o.clock())
	if err := o.notifier.Notify(ctx, n); err != nil {
		o.metrics.NotificationFailed(string(role))
		o.logger.WarnContext(ctx, "Notification was not delivered",
			"notification_id", n.ID.String(),
			"shipment_id", shipmentID.Int64(),
			"recipient_role", string(role),
			"error", err,
		)
	}
}

func recipientFor(to shipment.Status) (ports.RecipientRole, bool) {
	switch to {
	case shipment.Submitted, shipment.Reopened, shipment.Cancelled:
		return ports.RecipientBroker, true
	case shipment.UnderReview, shipment.Approved, shipment.Rejected, shipment.OnHold, shipment.Completed:
		return ports.RecipientShipper, true
	default:
		return "", false
	}
}

func statusMessage(s *shipment.Shipment) string {
	msg := fmt.Sprintf("shipment %s is now %s", s.Reference(), s.Status())
	if token := s.ClearanceToken(); token != nil && s.Status() == shipment.Approved {
		msg += fmt.Sprintf(" (clearance token %s)", token.String())
	}
	return msg
}
