package kernel

import (
	"fmt"
	"strings"

	"preclear/internal/pkg/errs"

	"github.com/google/uuid"
)

const clearanceTokenPrefix = "PCT-"

// ErrClearanceTokenIsNotConstructed is returned when validating a zero-value token.
var ErrClearanceTokenIsNotConstructed = errs.NewValueIsRequiredError(
	"ClearanceToken must be created via NewClearanceToken or ClearanceTokenFromString",
)

// ClearanceToken is the pre-clearance token handed to the shipper once a
// shipment is approved. It wraps a random UUID and renders as
// "PCT-" followed by 32 upper-case hex digits.
type ClearanceToken struct {
	id uuid.UUID
}

// NewClearanceToken issues a fresh random token.
func NewClearanceToken() ClearanceToken {
	return ClearanceToken{id: uuid.New()}
}

// ClearanceTokenFromString parses the persisted form of a token.
func ClearanceTokenFromString(s string) (ClearanceToken, error) {
	if !strings.HasPrefix(s, clearanceTokenPrefix) {
		return ClearanceToken{}, errs.NewValueIsInvalidErrorWithCause(
			"clearance token is invalid",
			fmt.Errorf("%q does not start with %s", s, clearanceTokenPrefix),
		)
	}
	id, err := uuid.Parse(strings.ToLower(strings.TrimPrefix(s, clearanceTokenPrefix)))
	if err != nil {
		return ClearanceToken{}, errs.NewValueIsInvalidErrorWithCause("clearance token is invalid", err)
	}
	token := ClearanceToken{id: id}
	if err = token.Validate(); err != nil {
		return ClearanceToken{}, err
	}
	return token, nil
}

func (t ClearanceToken) String() string {
	return clearanceTokenPrefix + strings.ToUpper(strings.ReplaceAll(t.id.String(), "-", ""))
}

// IsEqual compares two tokens by value.
func (t ClearanceToken) IsEqual(other ClearanceToken) bool {
	return t.id == other.id
}

// Validate rejects the zero-value token.
func (t ClearanceToken) Validate() error {
	if t.id == uuid.Nil {
		return ErrClearanceTokenIsNotConstructed
	}
	return nil
}
