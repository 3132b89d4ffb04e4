package kernel_test

import (
	"testing"

	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	t.Run("should accept positive values", func(t *testing.T) {
		id, err := kernel.NewID(42)

		require.NoError(t, err)
		assert.Equal(t, int64(42), id.Int64())
		assert.Equal(t, "42", id.String())
	})

	t.Run("should reject non-positive values", func(t *testing.T) {
		for _, raw := range []int64{0, -1, -404} {
			_, err := kernel.NewID(raw)

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), "id is invalid")
		}
	})
}

func TestOptionalID(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, kernel.OptionalID(nil))
		assert.Nil(t, kernel.RawID(nil))
	})

	t.Run("non-positive maps to nil", func(t *testing.T) {
		zero := int64(0)
		assert.Nil(t, kernel.OptionalID(&zero))
	})

	t.Run("round trip", func(t *testing.T) {
		raw := int64(9)
		id := kernel.OptionalID(&raw)

		require.NotNil(t, id)
		assert.Equal(t, kernel.ID(9), *id)
		assert.Equal(t, &raw, kernel.RawID(id))
	})
}
