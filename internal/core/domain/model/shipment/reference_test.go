package shipment_test

import (
	"sync"
	"testing"
	"time"

	"preclear/internal/core/domain/model/shipment"
	"preclear/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceGenerator_Next(t *testing.T) {
	t.Run("should derive reference from creation millis", func(t *testing.T) {
		g := shipment.NewReferenceGenerator()
		at := time.UnixMilli(1700000000123)

		assert.Equal(t, shipment.Reference("SHP-1700000000123"), g.Next(at))
	})

	t.Run("should stay strictly increasing within a millisecond", func(t *testing.T) {
		g := shipment.NewReferenceGenerator()
		at := time.UnixMilli(1700000000123)

		assert.Equal(t, shipment.Reference("SHP-1700000000123"), g.Next(at))
		assert.Equal(t, shipment.Reference("SHP-1700000000124"), g.Next(at))
		assert.Equal(t, shipment.Reference("SHP-1700000000125"), g.Next(at.Add(-time.Second)))
	})

	t.Run("should be unique under concurrency", func(t *testing.T) {
		g := shipment.NewReferenceGenerator()
		at := time.Now()

		var (
			mu   sync.Mutex
			seen = make(map[shipment.Reference]bool)
			wg   sync.WaitGroup
		)
		for range 100 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ref := g.Next(at)
				mu.Lock()
				defer mu.Unlock()
				seen[ref] = true
			}()
		}
		wg.Wait()

		assert.Len(t, seen, 100)
	})
}

func TestParseReference(t *testing.T) {
	ref, err := shipment.ParseReference("SHP-1700000000123")
	require.NoError(t, err)
	assert.Equal(t, "SHP-1700000000123", ref.String())

	for _, input := range []string{"", "SHP-", "SHP-abc", "SHP-0", "ORD-17"} {
		_, err = shipment.ParseReference(input)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, input)
	}
}
