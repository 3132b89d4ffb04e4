package kernel

import (
	"fmt"
	"strconv"

	"preclear/internal/pkg/errs"
)

// ID is the numeric identity of a persisted entity (shipment, exception,
// audit entry, user, broker). The zero value means "not assigned yet" and
// fails Validate.
type ID int64

// NewID validates and wraps a raw identifier. Identifiers are positive.
func NewID(raw int64) (ID, error) {
	id := ID(raw)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// Validate returns an error unless the identifier is positive.
func (id ID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id is invalid", fmt.Errorf("%d is not greater than 0", int64(id)))
	}
	return nil
}

// Int64 returns the raw identifier.
func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// OptionalID converts a nullable raw identifier. Nil and non-positive values
// both map to nil, which callers treat as "no actor" / "no shipment".
func OptionalID(raw *int64) *ID {
	if raw == nil || *raw <= 0 {
		return nil
	}
	id := ID(*raw)
	return &id
}

// RawID is the inverse of OptionalID.
func RawID(id *ID) *int64 {
	if id == nil {
		return nil
	}
	raw := int64(*id)
	return &raw
}
