package shipment_test

import (
	"testing"

	"preclear/internal/core/domain/model/shipment"
	"preclear/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for input, expected := range map[string]shipment.Mode{"": shipment.ModeGround, "AIR": shipment.ModeAir, " sea ": shipment.ModeSea} {
		mode, err := shipment.ParseMode(input)
		require.NoError(t, err)
		assert.Equal(t, expected, mode)
	}

	_, err := shipment.ParseMode("rail")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestParseType(t *testing.T) {
	for input, expected := range map[string]shipment.Type{"": shipment.TypeInternational, "Domestic": shipment.TypeDomestic} {
		shipmentType, err := shipment.ParseType(input)
		require.NoError(t, err)
		assert.Equal(t, expected, shipmentType)
	}

	_, err := shipment.ParseType("orbital")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewSummary(t *testing.T) {
	value, weight, negative := 1200.5, 14.2, -1.0

	t.Run("should accept declared totals", func(t *testing.T) {
		summary, err := shipment.NewSummary(&value, &weight, "usd")

		require.NoError(t, err)
		assert.Equal(t, &value, summary.TotalValue())
		assert.Equal(t, &weight, summary.TotalWeight())
		assert.Equal(t, "USD", summary.Currency())
	})

	t.Run("should accept omitted totals", func(t *testing.T) {
		summary, err := shipment.NewSummary(nil, nil, "")

		require.NoError(t, err)
		assert.Nil(t, summary.TotalValue())
		assert.Empty(t, summary.Currency())
	})

	t.Run("should reject invalid totals", func(t *testing.T) {
		_, err := shipment.NewSummary(&negative, nil, "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = shipment.NewSummary(nil, &negative, "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = shipment.NewSummary(nil, nil, "dollars")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
