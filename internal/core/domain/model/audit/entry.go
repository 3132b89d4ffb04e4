package audit

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/pkg/errs"
)

// Action is a dotted noun.verb label describing what happened.
type Action string

const (
	ActionShipmentCreated        Action = "shipment.created"
	ActionShipmentStatusChanged  Action = "shipment.status_changed"
	ActionShipmentBrokerAssigned Action = "shipment.broker_assigned"
	ActionExceptionCreated       Action = "exception.created"
	ActionExceptionResolved      Action = "exception.resolved"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is one immutable audit record. There is no way to change an entry
// once it has been built.
type Entry struct {
	id          kernel.ID
	userID      *kernel.ID
	shipmentID  *kernel.ID
	action      Action
	description string
	createdAt   time.Time

	isConstructed bool
}

// Snapshot carries every persisted field of an audit entry.
type Snapshot struct {
	ID          kernel.ID
	UserID      *kernel.ID
	ShipmentID  *kernel.ID
	Action      Action
	Description string
	CreatedAt   time.Time
}

func NewEntry(userID, shipmentID *kernel.ID, action Action, description string, now time.Time) (*Entry, error) {
	if err := action.Validate(); err != nil {
		return nil, err
	}
	return &Entry{
		userID:        userID,
		shipmentID:    shipmentID,
		action:        action,
		description:   strings.TrimSpace(description),
		createdAt:     now,
		isConstructed: true,
	}, nil
}

func RestoreEntry(snap Snapshot) (*Entry, error) {
	e, err := NewEntry(snap.UserID, snap.ShipmentID, snap.Action, snap.Description, snap.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := e.BindID(snap.ID); err != nil {
		return nil, err
	}
	return e, nil
}

// ShipmentCreated records the creation of a shipment.
func ShipmentCreated(userID *kernel.ID, shipmentID kernel.ID, reference string, now time.Time) (*Entry, error) {
	return NewEntry(userID, &shipmentID, ActionShipmentCreated, fmt.Sprintf("shipment %s created", reference), now)
}

// StatusChanged records an applied lifecycle transition.
func StatusChanged(userID *kernel.ID, shipmentID kernel.ID, from, to fmt.Stringer, now time.Time) (*Entry, error) {
	return NewEntry(userID, &shipmentID, ActionShipmentStatusChanged, fmt.Sprintf("status changed from %s to %s", from, to), now)
}

func BrokerAssigned(userID *kernel.ID, shipmentID, brokerID kernel.ID, now time.Time) (*Entry, error) {
	return NewEntry(userID, &shipmentID, ActionShipmentBrokerAssigned, fmt.Sprintf("broker %s assigned", brokerID), now)
}

func ExceptionCreated(userID *kernel.ID, shipmentID kernel.ID, code string, now time.Time) (*Entry, error) {
	return NewEntry(userID, &shipmentID, ActionExceptionCreated, fmt.Sprintf("exception %s raised", code), now)
}

func ExceptionResolved(userID *kernel.ID, shipmentID kernel.ID, code string, now time.Time) (*Entry, error) {
	return NewEntry(userID, &shipmentID, ActionExceptionResolved, fmt.Sprintf("exception %s resolved", code), now)
}

// Validate requires a non-empty noun.verb shape.
func (a Action) Validate() error {
	noun, verb, ok := strings.Cut(string(a), ".")
	if !ok || noun == "" || verb == "" || strings.ContainsAny(string(a), " \t\n") {
		return errs.NewValueIsInvalidErrorWithCause("audit action is invalid", fmt.Errorf("%q is not in noun.verb form", a))
	}
	return nil
}

func (a Action) String() string {
	return string(a)
}

func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// BindID assigns the store-generated identity once.
func (e *Entry) BindID(id kernel.ID) error {
	if e.id != 0 {
		return fmt.Errorf("audit entry identity is already bound to %s", e.id)
	}
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) ID() kernel.ID          { return e.id }
func (e *Entry) UserID() *kernel.ID     { return e.userID }
func (e *Entry) ShipmentID() *kernel.ID { return e.shipmentID }
func (e *Entry) Action() Action         { return e.action }
func (e *Entry) Description() string    { return e.description }
func (e *Entry) CreatedAt() time.Time   { return e.createdAt }
