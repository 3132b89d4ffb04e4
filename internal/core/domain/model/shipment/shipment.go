package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not created
	// through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

	// ErrBrokerAssignmentNotAllowed is returned when a broker is assigned to a
	// shipment whose lifecycle has already ended.
	ErrBrokerAssignmentNotAllowed = errors.New("broker assignment is not allowed")

	// ErrIdentityAlreadyBound is returned by BindID when the shipment already has an id.
	ErrIdentityAlreadyBound = errors.New("shipment identity is already bound")
)

// Shipment is the aggregate root tracking one consignment through clearance.
//
// Shipment follows these invariants:
//   - status is always one of the defined states
//   - status only changes along edges of the transition table
//   - reference is assigned on creation and never changes
//   - an approved shipment carries a clearance token and its issue time
//   - brokers cannot be assigned once the shipment is completed or cancelled
//
// Shipments are never deleted; cancellation is a terminal status.
type Shipment struct {
	id               kernel.ID
	reference        Reference
	ownerID          kernel.ID
	name             string
	details          Details
	status           Status
	assignedBrokerID *kernel.ID
	clearanceToken   *kernel.ClearanceToken
	tokenIssuedAt    *time.Time
	notes            string
	createdAt        time.Time
	updatedAt        time.Time

	isConstructed bool
}

// Transition describes the outcome of ChangeStatus.
type Transition struct {
	From Status
	To   Status
}

// Changed is false for a same-state (no-op) request.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// Snapshot carries every persisted field of a shipment. It is used by
// repositories to rehydrate aggregates.
type Snapshot struct {
	ID               kernel.ID
	Reference        Reference
	OwnerID          kernel.ID
	Name             string
	Details          Details
	Status           Status
	AssignedBrokerID *kernel.ID
	ClearanceToken   *kernel.ClearanceToken
	TokenIssuedAt    *time.Time
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewShipment creates a draft shipment owned by ownerID. The identity is bound
// later by the repository that persists it.
//
// Example:
//
//	details := shipment.Details{Mode: shipment.ModeAir, Type: shipment.TypeInternational, Carrier: "DHL"}
//	s, err := shipment.NewShipment(generator.Next(now), ownerID, "Laptops", details, now)
func NewShipment(reference Reference, ownerID kernel.ID, name string, details Details, now time.Time) (*Shipment, error) {
	s := &Shipment{
		status:        Draft,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setReference(reference),
		s.setOwnerID(ownerID),
		s.setName(name),
		s.setDetails(details),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment rehydrates a persisted shipment, re-checking the invariants
// that do not depend on history.
func RestoreShipment(snap Snapshot) (*Shipment, error) {
	s := &Shipment{
		assignedBrokerID: snap.AssignedBrokerID,
		clearanceToken:   snap.ClearanceToken,
		tokenIssuedAt:    snap.TokenIssuedAt,
		notes:            snap.Notes,
		createdAt:        snap.CreatedAt,
		updatedAt:        snap.UpdatedAt,
		isConstructed:    true,
	}

	if err := errors.Join(
		s.BindID(snap.ID),
		s.setReference(snap.Reference),
		s.setOwnerID(snap.OwnerID),
		s.setName(snap.Name),
		s.setDetails(snap.Details),
		s.setStatus(snap.Status),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// BindID assigns the store-generated identity. It can be called once.
func (s *Shipment) BindID(id kernel.ID) error {
	if s.id != 0 {
		return ErrIdentityAlreadyBound
	}
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) ID() kernel.ID                          { return s.id }
func (s *Shipment) Reference() Reference                   { return s.reference }
func (s *Shipment) OwnerID() kernel.ID                     { return s.ownerID }
func (s *Shipment) Name() string                           { return s.name }
func (s *Shipment) Details() Details                       { return s.details }
func (s *Shipment) Status() Status                         { return s.status }
func (s *Shipment) AssignedBrokerID() *kernel.ID           { return s.assignedBrokerID }
func (s *Shipment) ClearanceToken() *kernel.ClearanceToken { return s.clearanceToken }
func (s *Shipment) TokenIssuedAt() *time.Time              { return s.tokenIssuedAt }
func (s *Shipment) Notes() string                          { return s.notes }
func (s *Shipment) CreatedAt() time.Time                   { return s.createdAt }
func (s *Shipment) UpdatedAt() time.Time                   { return s.updatedAt }

// ChangeStatus moves the shipment to target.
//
// A request for the current status is a no-op success: nothing changes and
// the returned Transition reports Changed() == false. Otherwise the edge must
// exist in the transition table. Non-blank notes replace the stored notes.
// Entering Approved issues a clearance token.
//
// Returns *TransitionNotAllowedError when the edge is missing; the shipment
// is left untouched in that case.
func (s *Shipment) ChangeStatus(target Status, notes string, now time.Time) (Transition, error) {
	if err := target.Validate(); err != nil {
		return Transition{}, err
	}

	transition := Transition{From: s.status, To: target}
	if !transition.Changed() {
		return transition, nil
	}

	next, err := s.status.TransitionTo(target)
	if err != nil {
		return Transition{}, err
	}

	s.status = next
	s.updatedAt = now
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		s.notes = trimmed
	}
	if next == Approved {
		token := kernel.NewClearanceToken()
		s.clearanceToken = &token
		s.tokenIssuedAt = &now
	}

	return transition, nil
}

// AssignBroker makes brokerID responsible for the shipment, replacing any
// previous assignment. Broker identity is checked by the caller.
func (s *Shipment) AssignBroker(brokerID kernel.ID, now time.Time) error {
	if err := brokerID.Validate(); err != nil {
		return err
	}
	if s.status.IsTerminal() {
		return fmt.Errorf("%w: shipment is %s", ErrBrokerAssignmentNotAllowed, s.status)
	}

	s.assignedBrokerID = &brokerID
	s.updatedAt = now
	return nil
}

func (s *Shipment) setReference(reference Reference) error {
	if _, err := ParseReference(reference.String()); err != nil {
		return err
	}
	s.reference = reference
	return nil
}

func (s *Shipment) setOwnerID(ownerID kernel.ID) error {
	if ownerID == 0 {
		return errs.NewValueIsRequiredError("owner id")
	}
	if err := ownerID.Validate(); err != nil {
		return err
	}
	s.ownerID = ownerID
	return nil
}

func (s *Shipment) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("shipment name")
	}
	s.name = name
	return nil
}

func (s *Shipment) setDetails(details Details) error {
	mode, err := ParseMode(string(details.Mode))
	if err != nil {
		return err
	}
	shipmentType, err := ParseType(string(details.Type))
	if err != nil {
		return err
	}
	details.Mode = mode
	details.Type = shipmentType
	details.Carrier = strings.TrimSpace(details.Carrier)
	if details.Carrier == "" {
		details.Carrier = DefaultCarrier
	}
	s.details = details
	return nil
}

func (s *Shipment) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}
