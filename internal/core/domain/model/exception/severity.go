package exception

import (
	"fmt"
	"strings"

	"preclear/internal/pkg/errs"
)

// Severity is advisory metadata attached to an exception.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// DefaultSeverity applies when the creator does not choose one.
const DefaultSeverity = SeverityWarning

// ParseSeverity resolves a severity name case-insensitively. An empty name
// yields DefaultSeverity.
func ParseSeverity(name string) (Severity, error) {
	switch s := Severity(strings.ToLower(strings.TrimSpace(name))); s {
	case "":
		return DefaultSeverity, nil
	case SeverityInfo, SeverityWarning, SeverityError:
		return s, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("severity is invalid", fmt.Errorf("%q is not one of info, warning, error", name))
	}
}

// IsBlocking reports whether an unresolved exception of this severity stops approval.
func (s Severity) IsBlocking() bool {
	return s == SeverityError
}

func (s Severity) String() string {
	return string(s)
}
