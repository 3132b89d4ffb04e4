package shipment

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"preclear/internal/pkg/errs"
)

const referencePrefix = "SHP-"

// Reference is the human-facing shipment reference. It is assigned once at
// creation and never changes.
type Reference string

// ParseReference validates the persisted form "SHP-<unix millis>".
func ParseReference(s string) (Reference, error) {
	digits, ok := strings.CutPrefix(s, referencePrefix)
	if !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("reference is invalid", fmt.Errorf("%q has no %s prefix", s, referencePrefix))
	}
	if n, err := strconv.ParseInt(digits, 10, 64); err != nil || n <= 0 {
		return "", errs.NewValueIsInvalidErrorWithCause("reference is invalid", fmt.Errorf("%q is not a positive sequence", digits))
	}
	return Reference(s), nil
}

func (r Reference) String() string {
	return string(r)
}

// ReferenceGenerator derives references from the creation timestamp in
// milliseconds. Within one process the sequence is strictly increasing: two
// creations in the same millisecond get consecutive values.
//
// Uniqueness across processes is guarded by the unique index on
// shipments.reference; a violation means two writers share a clock and is
// treated as a configuration fault.
type ReferenceGenerator struct {
	mu   sync.Mutex
	last int64
}

func NewReferenceGenerator() *ReferenceGenerator {
	return &ReferenceGenerator{}
}

// Next returns the reference for a shipment created at now.
func (g *ReferenceGenerator) Next(now time.Time) Reference {
	g.mu.Lock()
	defer g.mu.Unlock()

	seq := now.UnixMilli()
	if seq <= g.last {
		seq = g.last + 1
	}
	g.last = seq
	return Reference(referencePrefix + strconv.FormatInt(seq, 10))
}
