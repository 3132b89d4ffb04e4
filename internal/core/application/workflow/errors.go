package workflow

import (
	"errors"

	"preclear/internal/core/application/usecases/commands"
	"preclear/internal/core/domain/model/shipment"
	"preclear/internal/pkg/errs"
)

// Error kinds reported to Metrics and used by inbound adapters to pick a
// response status.
const (
	KindInvalidArgument          = "invalid_argument"
	KindNotFound                 = "not_found"
	KindTransitionNotAllowed     = "transition_not_allowed"
	KindAssignmentNotAllowed     = "assignment_not_allowed"
	KindBlockedByOpenExceptions  = "blocked_by_open_exceptions"
	KindRequiredDocumentsMissing = "required_documents_missing"
	KindConcurrencyConflict      = "concurrency_conflict"
	KindInternal                 = "internal_error"
)

// Classify maps an error returned by the orchestrator onto its kind.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return KindInvalidArgument
	case errors.Is(err, errs.ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, shipment.ErrTransitionNotAllowed):
		return KindTransitionNotAllowed
	case errors.Is(err, shipment.ErrBrokerAssignmentNotAllowed):
		return KindAssignmentNotAllowed
	case errors.Is(err, commands.ErrBlockedByOpenExceptions):
		return KindBlockedByOpenExceptions
	case errors.Is(err, commands.ErrRequiredDocumentsMissing):
		return KindRequiredDocumentsMissing
	case errors.Is(err, errs.ErrConcurrencyConflict):
		return KindConcurrencyConflict
	default:
		return KindInternal
	}
}
