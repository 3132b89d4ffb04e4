// Package brokers provides the broker directory used for assignment.
package brokers

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/pkg/errs"
)

// StaticDirectory is a fixed, configured set of broker ids.
type StaticDirectory struct {
	ids []kernel.ID
}

// ParseStaticDirectory reads a comma separated id list such as "1, 2,5".
// Duplicates are collapsed and the result is sorted. An empty list is valid.
func ParseStaticDirectory(raw string) (*StaticDirectory, error) {
	var ids []kernel.ID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("broker id", fmt.Errorf("%q: %w", part, err))
		}
		id, err := kernel.NewID(n)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return &StaticDirectory{ids: slices.Compact(ids)}, nil
}

func NewStaticDirectory(ids ...kernel.ID) *StaticDirectory {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return &StaticDirectory{ids: slices.Compact(sorted)}
}

func (d *StaticDirectory) Brokers(context.Context) ([]kernel.ID, error) {
	return slices.Clone(d.ids), nil
}

func (d *StaticDirectory) Exists(_ context.Context, id kernel.ID) (bool, error) {
	_, found := slices.BinarySearch(d.ids, id)
	return found, nil
}
