package shipment

import (
	"fmt"
	"regexp"
	"strings"

	"preclear/internal/pkg/errs"
)

// Mode is the transport mode of a shipment.
type Mode string

const (
	ModeAir    Mode = "air"
	ModeSea    Mode = "sea"
	ModeGround Mode = "ground"
)

// Type distinguishes domestic from international consignments.
type Type string

const (
	TypeDomestic      Type = "domestic"
	TypeInternational Type = "international"
)

// DefaultCarrier is used when the shipper does not name one.
const DefaultCarrier = "UPS"

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ParseMode resolves a mode name; an empty name defaults to ground.
func ParseMode(name string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(name))); m {
	case "":
		return ModeGround, nil
	case ModeAir, ModeSea, ModeGround:
		return m, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("mode is invalid", fmt.Errorf("%q is not a known mode", name))
	}
}

// ParseType resolves a shipment type name; an empty name defaults to international.
func ParseType(name string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(name))); t {
	case "":
		return TypeInternational, nil
	case TypeDomestic, TypeInternational:
		return t, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("type is invalid", fmt.Errorf("%q is not a known shipment type", name))
	}
}

// Summary holds the optional monetary and weight totals declared by the shipper.
type Summary struct {
	totalValue  *float64
	totalWeight *float64
	currency    string
}

// NewSummary validates declared totals. Totals may be omitted but never
// negative; a currency, when present, is an ISO 4217 code.
func NewSummary(totalValue, totalWeight *float64, currency string) (Summary, error) {
	if totalValue != nil && *totalValue < 0 {
		return Summary{}, errs.NewValueIsInvalidErrorWithCause(
			"total value is invalid", fmt.Errorf("%v is negative", *totalValue))
	}
	if totalWeight != nil && *totalWeight < 0 {
		return Summary{}, errs.NewValueIsInvalidErrorWithCause(
			"total weight is invalid", fmt.Errorf("%v is negative", *totalWeight))
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency != "" && !currencyPattern.MatchString(currency) {
		return Summary{}, errs.NewValueIsInvalidErrorWithCause(
			"currency is invalid", fmt.Errorf("%q is not an ISO 4217 code", currency))
	}
	return Summary{totalValue: totalValue, totalWeight: totalWeight, currency: currency}, nil
}

func (s Summary) TotalValue() *float64  { return s.totalValue }
func (s Summary) TotalWeight() *float64 { return s.totalWeight }
func (s Summary) Currency() string      { return s.currency }

// Details are the shipper-provided descriptive fields of a shipment.
type Details struct {
	Mode    Mode
	Type    Type
	Carrier string
	Summary Summary
}
