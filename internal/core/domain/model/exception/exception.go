package exception

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/pkg/errs"
)

var (
	// ErrExceptionIsNotConstructed is returned when an Exception was not created via
	// NewException or RestoreException.
	ErrExceptionIsNotConstructed = errors.New("Exception must be created via NewException constructor")

	// ErrResolutionIsInconsistent is returned when a persisted row carries resolver
	// data while unresolved, or lacks a resolution time while resolved.
	ErrResolutionIsInconsistent = errors.New("exception resolution state is inconsistent")
)

// Exception is a compliance problem raised against exactly one shipment.
// Once resolved it never changes again.
type Exception struct {
	id         kernel.ID
	shipmentID kernel.ID
	code       string
	message    string
	severity   Severity
	resolved   bool
	createdBy  *kernel.ID
	resolvedBy *kernel.ID
	createdAt  time.Time
	resolvedAt *time.Time

	isConstructed bool
}

// Snapshot carries every persisted field of an exception.
type Snapshot struct {
	ID         kernel.ID
	ShipmentID kernel.ID
	Code       string
	Message    string
	Severity   Severity
	Resolved   bool
	CreatedBy  *kernel.ID
	ResolvedBy *kernel.ID
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

// NewException raises an unresolved exception against shipmentID.
func NewException(
	shipmentID kernel.ID,
	code, message string,
	severity Severity,
	createdBy *kernel.ID,
	now time.Time,
) (*Exception, error) {
	e := &Exception{
		createdBy:     createdBy,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		e.setShipmentID(shipmentID),
		e.setCode(code),
		e.setMessage(message),
		e.setSeverity(severity),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreException rehydrates a persisted exception.
func RestoreException(snap Snapshot) (*Exception, error) {
	e := &Exception{
		resolved:      snap.Resolved,
		createdBy:     snap.CreatedBy,
		resolvedBy:    snap.ResolvedBy,
		createdAt:     snap.CreatedAt,
		resolvedAt:    snap.ResolvedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		e.BindID(snap.ID),
		e.setShipmentID(snap.ShipmentID),
		e.setCode(snap.Code),
		e.setMessage(snap.Message),
		e.setSeverity(snap.Severity),
		e.checkResolution(),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// Validate ensures the Exception was properly constructed.
func (e *Exception) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrExceptionIsNotConstructed
	}
	return nil
}

// BindID assigns the store-generated identity once.
func (e *Exception) BindID(id kernel.ID) error {
	if e.id != 0 {
		return fmt.Errorf("exception identity is already bound to %s", e.id)
	}
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Exception) ID() kernel.ID          { return e.id }
func (e *Exception) ShipmentID() kernel.ID  { return e.shipmentID }
func (e *Exception) Code() string           { return e.code }
func (e *Exception) Message() string        { return e.message }
func (e *Exception) Severity() Severity     { return e.severity }
func (e *Exception) Resolved() bool         { return e.resolved }
func (e *Exception) CreatedBy() *kernel.ID  { return e.createdBy }
func (e *Exception) ResolvedBy() *kernel.ID { return e.resolvedBy }
func (e *Exception) CreatedAt() time.Time   { return e.createdAt }
func (e *Exception) ResolvedAt() *time.Time { return e.resolvedAt }

// IsBlocking reports whether this exception currently stops approval.
func (e *Exception) IsBlocking() bool {
	return !e.resolved && e.severity.IsBlocking()
}

// Resolve marks the exception as resolved by resolvedBy at now.
//
// Resolving an already-resolved exception succeeds without touching it: the
// first resolver and timestamp are kept. The returned flag is true only when
// this call performed the resolution.
func (e *Exception) Resolve(resolvedBy *kernel.ID, now time.Time) bool {
	if e.resolved {
		return false
	}
	e.resolved = true
	e.resolvedBy = resolvedBy
	e.resolvedAt = &now
	return true
}

func (e *Exception) setShipmentID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("shipment id is invalid", err)
	}
	e.shipmentID = id
	return nil
}

func (e *Exception) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	e.code = code
	return nil
}

func (e *Exception) setMessage(message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return errs.NewValueIsRequiredError("message")
	}
	e.message = message
	return nil
}

func (e *Exception) setSeverity(severity Severity) error {
	parsed, err := ParseSeverity(string(severity))
	if err != nil {
		return err
	}
	e.severity = parsed
	return nil
}

func (e *Exception) checkResolution() error {
	if !e.resolved && (e.resolvedBy != nil || e.resolvedAt != nil) {
		return fmt.Errorf("%w: unresolved exception has resolver data", ErrResolutionIsInconsistent)
	}
	if e.resolved && e.resolvedAt == nil {
		return fmt.Errorf("%w: resolved exception has no resolution time", ErrResolutionIsInconsistent)
	}
	return nil
}
