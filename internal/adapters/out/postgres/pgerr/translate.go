// Package pgerr maps PostgreSQL error codes onto the application's error taxonomy.
package pgerr

import (
	"errors"
	"fmt"

	"preclear/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

// ErrUniqueViolation wraps a unique-constraint violation.
var ErrUniqueViolation = errors.New("unique constraint violated")

// Translate converts lock timeouts, serialization failures and deadlocks into
// errs.ConcurrencyConflictError and unique violations into ErrUniqueViolation.
// Any other error is returned unchanged.
func Translate(err error, entity string, id any) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return errs.NewConcurrencyConflictError(entity, id, err)
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s (%s)", ErrUniqueViolation, pgErr.ConstraintName, pgErr.Detail)
	default:
		return err
	}
}
