package shipment

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"preclear/internal/pkg/errs"
)

// ErrTransitionNotAllowed is the sentinel behind TransitionNotAllowedError.
var ErrTransitionNotAllowed = errors.New("status transition is not allowed")

// Status represents the clearance lifecycle state of a shipment.
//
// State transitions:
//
//	draft ──> submitted ──> under_review ──┬──> approved ──> completed
//	              │              ▲         ├──> rejected ──┐
//	              │              │         └──> on_hold ───┤
//	              └──> on_hold   └──── reopened <──────────┘
//
// Every non-terminal state may also move to cancelled. completed and
// cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status set by the shipper on creation.
	Draft

	// Submitted means the shipper handed the shipment over for screening.
	Submitted

	// UnderReview means a broker is reviewing the shipment.
	UnderReview

	// Approved means the shipment is pre-cleared and holds a clearance token.
	Approved

	// Rejected means the broker refused clearance. It can be reopened.
	Rejected

	// OnHold means review is paused pending more information. It can be reopened.
	OnHold

	// Reopened means a rejected or held shipment is queued for another review.
	Reopened

	// Completed is the terminal state of an approved shipment.
	Completed

	// Cancelled is the terminal state of an abandoned shipment.
	Cancelled
)

var statusNames = map[Status]string{
	Draft:       "draft",
	Submitted:   "submitted",
	UnderReview: "under_review",
	Approved:    "approved",
	Rejected:    "rejected",
	OnHold:      "on_hold",
	Reopened:    "reopened",
	Completed:   "completed",
	Cancelled:   "cancelled",
}

// statusAliases maps accepted spellings onto canonical names. Only verb forms
// of the same state belong here; names from other workflows do not.
var statusAliases = map[string]Status{
	"reopen": Reopened,
}

// allowedTransitions is the single source of truth for the state machine.
// It is never mutated after package initialisation.
var allowedTransitions = map[Status][]Status{
	Draft:       {Submitted, Cancelled},
	Submitted:   {UnderReview, OnHold, Cancelled},
	UnderReview: {Approved, Rejected, OnHold, Cancelled},
	Approved:    {Completed, Cancelled},
	Rejected:    {Reopened, Cancelled},
	OnHold:      {Reopened, Cancelled},
	Reopened:    {UnderReview, Cancelled},
	Completed:   {},
	Cancelled:   {},
}

// TransitionNotAllowedError is the business-rule rejection of a transition.
// It is returned before anything is written.
type TransitionNotAllowedError struct {
	From Status
	To   Status
}

func (e *TransitionNotAllowedError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrTransitionNotAllowed, e.From, e.To)
}

func (e *TransitionNotAllowedError) Unwrap() error {
	return ErrTransitionNotAllowed
}

// AllStatuses returns every valid status in declaration order.
func AllStatuses() []Status {
	return []Status{Draft, Submitted, UnderReview, Approved, Rejected, OnHold, Reopened, Completed, Cancelled}
}

// ParseStatus normalizes a status name (case, surrounding space, '-' or ' '
// separators) and resolves it to a Status.
func ParseStatus(name string) (Status, error) {
	normalized := normalizeStatusName(name)
	if normalized == "" {
		return Unknown, errs.NewValueIsRequiredError("status")
	}
	if s, ok := statusAliases[normalized]; ok {
		return s, nil
	}
	for s, n := range statusNames {
		if n == normalized {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a known status", name),
	)
}

func normalizeStatusName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical persisted name, or "unknown".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	targets, ok := allowedTransitions[s]
	return ok && len(targets) == 0
}

// AllowedTargets returns a copy of the statuses reachable from s in one step.
func (s Status) AllowedTargets() []Status {
	return slices.Clone(allowedTransitions[s])
}

// CanTransitionTo reports whether target is in the allowed set of s.
// The same-state case is handled by the aggregate and is not an edge here.
func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(allowedTransitions[s], target)
}

// TransitionTo validates a move from s to target.
//
// Returns:
//   - (target, nil) when the edge exists in the transition table
//   - (Unknown, error) when either status is invalid or the edge is missing
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := errors.Join(s.Validate(), target.Validate()); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, &TransitionNotAllowedError{From: s, To: target}
	}
	return target, nil
}
