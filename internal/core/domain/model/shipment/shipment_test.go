package shipment_test

import (
	"testing"
	"time"

	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/core/domain/model/shipment"
	"preclear/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	s, err := shipment.NewShipment("SHP-1700000000000", 5, "Laptops", shipment.Details{}, testNow)
	require.NoError(t, err)
	return s
}

func moveTo(t *testing.T, s *shipment.Shipment, path ...shipment.Status) {
	t.Helper()
	for _, status := range path {
		_, err := s.ChangeStatus(status, "", testNow)
		require.NoError(t, err)
	}
}

func TestNewShipment(t *testing.T) {
	t.Run("should create draft shipment with defaults", func(t *testing.T) {
		s := newTestShipment(t)

		require.NoError(t, s.Validate())
		assert.Equal(t, shipment.Draft, s.Status())
		assert.Equal(t, kernel.ID(0), s.ID())
		assert.Equal(t, kernel.ID(5), s.OwnerID())
		assert.Equal(t, shipment.Reference("SHP-1700000000000"), s.Reference())
		assert.Equal(t, shipment.ModeGround, s.Details().Mode)
		assert.Equal(t, shipment.TypeInternational, s.Details().Type)
		assert.Equal(t, shipment.DefaultCarrier, s.Details().Carrier)
		assert.Nil(t, s.AssignedBrokerID())
		assert.Nil(t, s.ClearanceToken())
		assert.Equal(t, testNow, s.CreatedAt())
		assert.Equal(t, testNow, s.UpdatedAt())
	})

	t.Run("should reject missing identifying fields", func(t *testing.T) {
		testCases := []struct {
			name      string
			reference shipment.Reference
			ownerID   kernel.ID
			title     string
			details   shipment.Details
			expected  error
		}{
			{"missing owner", "SHP-1", 0, "Laptops", shipment.Details{}, errs.ErrValueIsRequired},
			{"negative owner", "SHP-1", -3, "Laptops", shipment.Details{}, errs.ErrValueIsInvalid},
			{"blank name", "SHP-1", 5, "  ", shipment.Details{}, errs.ErrValueIsRequired},
			{"bad reference", "REF-1", 5, "Laptops", shipment.Details{}, errs.ErrValueIsInvalid},
			{"bad mode", "SHP-1", 5, "Laptops", shipment.Details{Mode: "rail"}, errs.ErrValueIsInvalid},
			{"bad type", "SHP-1", 5, "Laptops", shipment.Details{Type: "galactic"}, errs.ErrValueIsInvalid},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				s, err := shipment.NewShipment(tc.reference, tc.ownerID, tc.title, tc.details, testNow)

				require.ErrorIs(t, err, tc.expected)
				assert.Nil(t, s)
			})
		}
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var s shipment.Shipment
		require.ErrorIs(t, s.Validate(), shipment.ErrShipmentIsNotConstructed)
	})
}

func TestShipment_BindID(t *testing.T) {
	s := newTestShipment(t)

	require.ErrorIs(t, s.BindID(0), errs.ErrValueIsInvalid)
	require.NoError(t, s.BindID(11))
	assert.Equal(t, kernel.ID(11), s.ID())
	require.ErrorIs(t, s.BindID(12), shipment.ErrIdentityAlreadyBound)
}

func TestShipment_ChangeStatus(t *testing.T) {
	t.Run("should apply allowed transition", func(t *testing.T) {
		s := newTestShipment(t)
		later := testNow.Add(time.Hour)

		transition, err := s.ChangeStatus(shipment.Submitted, "ready", later)

		require.NoError(t, err)
		assert.True(t, transition.Changed())
		assert.Equal(t, shipment.Draft, transition.From)
		assert.Equal(t, shipment.Submitted, transition.To)
		assert.Equal(t, shipment.Submitted, s.Status())
		assert.Equal(t, "ready", s.Notes())
		assert.Equal(t, later, s.UpdatedAt())
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		s := newTestShipment(t)
		moveTo(t, s, shipment.Submitted)
		updatedAt := s.UpdatedAt()

		for range 2 {
			transition, err := s.ChangeStatus(shipment.Submitted, "again", testNow.Add(time.Hour))

			require.NoError(t, err)
			assert.False(t, transition.Changed())
			assert.Equal(t, shipment.Submitted, s.Status())
			assert.Equal(t, updatedAt, s.UpdatedAt())
			assert.Empty(t, s.Notes())
		}
	})

	t.Run("should reject disallowed transition without mutation", func(t *testing.T) {
		s := newTestShipment(t)
		moveTo(t, s, shipment.Submitted)

		_, err := s.ChangeStatus(shipment.Approved, "skip review", testNow.Add(time.Hour))

		require.ErrorIs(t, err, shipment.ErrTransitionNotAllowed)
		assert.Equal(t, shipment.Submitted, s.Status())
		assert.Empty(t, s.Notes())
		assert.Nil(t, s.ClearanceToken())
	})

	t.Run("blank notes keep previous notes", func(t *testing.T) {
		s := newTestShipment(t)
		_, err := s.ChangeStatus(shipment.Submitted, "first", testNow)
		require.NoError(t, err)

		_, err = s.ChangeStatus(shipment.UnderReview, "   ", testNow)
		require.NoError(t, err)

		assert.Equal(t, "first", s.Notes())
	})

	t.Run("approval issues clearance token", func(t *testing.T) {
		s := newTestShipment(t)
		moveTo(t, s, shipment.Submitted, shipment.UnderReview)
		approvedAt := testNow.Add(2 * time.Hour)

		_, err := s.ChangeStatus(shipment.Approved, "", approvedAt)

		require.NoError(t, err)
		require.NotNil(t, s.ClearanceToken())
		require.NoError(t, s.ClearanceToken().Validate())
		require.NotNil(t, s.TokenIssuedAt())
		assert.Equal(t, approvedAt, *s.TokenIssuedAt())
	})

	t.Run("rejected shipment goes back to review through reopened", func(t *testing.T) {
		s := newTestShipment(t)
		moveTo(t, s, shipment.Submitted, shipment.UnderReview, shipment.Rejected)

		_, err := s.ChangeStatus(shipment.UnderReview, "", testNow)
		require.ErrorIs(t, err, shipment.ErrTransitionNotAllowed)

		moveTo(t, s, shipment.Reopened, shipment.UnderReview)
		assert.Equal(t, shipment.UnderReview, s.Status())
	})

	t.Run("terminal states accept only themselves", func(t *testing.T) {
		s := newTestShipment(t)
		moveTo(t, s, shipment.Cancelled)

		transition, err := s.ChangeStatus(shipment.Cancelled, "", testNow)
		require.NoError(t, err)
		assert.False(t, transition.Changed())

		_, err = s.ChangeStatus(shipment.Submitted, "", testNow)
		require.ErrorIs(t, err, shipment.ErrTransitionNotAllowed)
	})

	t.Run("invalid target", func(t *testing.T) {
		s := newTestShipment(t)

		_, err := s.ChangeStatus(shipment.Unknown, "", testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, shipment.Draft, s.Status())
	})
}

func TestShipment_AssignBroker(t *testing.T) {
	t.Run("should assign and overwrite", func(t *testing.T) {
		s := newTestShipment(t)

		require.NoError(t, s.AssignBroker(3, testNow))
		require.NoError(t, s.AssignBroker(4, testNow.Add(time.Minute)))

		require.NotNil(t, s.AssignedBrokerID())
		assert.Equal(t, kernel.ID(4), *s.AssignedBrokerID())
		assert.Equal(t, testNow.Add(time.Minute), s.UpdatedAt())
	})

	t.Run("should reject invalid broker id", func(t *testing.T) {
		s := newTestShipment(t)

		require.ErrorIs(t, s.AssignBroker(0, testNow), errs.ErrValueIsInvalid)
		assert.Nil(t, s.AssignedBrokerID())
	})

	t.Run("should reject terminal shipments", func(t *testing.T) {
		for _, path := range [][]shipment.Status{
			{shipment.Cancelled},
			{shipment.Submitted, shipment.UnderReview, shipment.Approved, shipment.Completed},
		} {
			s := newTestShipment(t)
			moveTo(t, s, path...)

			err := s.AssignBroker(3, testNow)

			require.ErrorIs(t, err, shipment.ErrBrokerAssignmentNotAllowed)
			assert.Nil(t, s.AssignedBrokerID())
		}
	})
}

func TestRestoreShipment(t *testing.T) {
	broker := kernel.ID(8)
	token := kernel.NewClearanceToken()
	issued := testNow.Add(time.Hour)

	t.Run("should restore every field", func(t *testing.T) {
		s, err := shipment.RestoreShipment(shipment.Snapshot{
			ID:               21,
			Reference:        "SHP-1700000000001",
			OwnerID:          5,
			Name:             "Laptops",
			Details:          shipment.Details{Mode: shipment.ModeAir, Type: shipment.TypeDomestic, Carrier: "DHL"},
			Status:           shipment.Approved,
			AssignedBrokerID: &broker,
			ClearanceToken:   &token,
			TokenIssuedAt:    &issued,
			Notes:            "ok",
			CreatedAt:        testNow,
			UpdatedAt:        issued,
		})

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.Equal(t, kernel.ID(21), s.ID())
		assert.Equal(t, shipment.Approved, s.Status())
		assert.Equal(t, "DHL", s.Details().Carrier)
		assert.Equal(t, &broker, s.AssignedBrokerID())
		assert.True(t, token.IsEqual(*s.ClearanceToken()))
	})

	t.Run("should reject corrupt rows", func(t *testing.T) {
		_, err := shipment.RestoreShipment(shipment.Snapshot{
			ID:        21,
			Reference: "SHP-1700000000001",
			OwnerID:   5,
			Name:      "Laptops",
			Status:    shipment.Status(42),
		})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = shipment.RestoreShipment(shipment.Snapshot{
			Reference: "SHP-1700000000001",
			OwnerID:   5,
			Name:      "Laptops",
			Status:    shipment.Draft,
		})
		require.Error(t, err)
	})
}
