package audit_test

import (
	"testing"
	"time"

	"preclear/internal/core/domain/model/audit"
	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/core/domain/model/shipment"
	"preclear/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestAction_Validate(t *testing.T) {
	valid := []audit.Action{
		audit.ActionShipmentCreated,
		audit.ActionShipmentStatusChanged,
		audit.ActionShipmentBrokerAssigned,
		audit.ActionExceptionCreated,
		audit.ActionExceptionResolved,
	}
	for _, a := range valid {
		assert.NoError(t, a.Validate(), a)
	}

	invalid := []audit.Action{"", "shipment", ".created", "shipment.", "shipment .created"}
	for _, a := range invalid {
		assert.ErrorIs(t, a.Validate(), errs.ErrValueIsInvalid, a)
	}
}

func TestNewEntry(t *testing.T) {
	user := kernel.ID(4)

	e, err := audit.NewEntry(&user, nil, "user.login", "  signed in  ", testNow)

	require.NoError(t, err)
	assert.NoError(t, e.Validate())
	assert.Equal(t, kernel.ID(0), e.ID())
	assert.Equal(t, &user, e.UserID())
	assert.Nil(t, e.ShipmentID())
	assert.Equal(t, "signed in", e.Description())
	assert.Equal(t, testNow, e.CreatedAt())
}

func TestNewEntry_RejectsMalformedAction(t *testing.T) {
	_, err := audit.NewEntry(nil, nil, "created", "", testNow)

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatusChanged_NamesBothStatuses(t *testing.T) {
	e, err := audit.StatusChanged(nil, 9, shipment.UnderReview, shipment.Approved, testNow)

	require.NoError(t, err)
	assert.Equal(t, audit.ActionShipmentStatusChanged, e.Action())
	assert.Equal(t, "status changed from under_review to approved", e.Description())
	assert.Equal(t, kernel.ID(9), *e.ShipmentID())
	assert.Nil(t, e.UserID())
}

func TestHelpers_Descriptions(t *testing.T) {
	created, err := audit.ShipmentCreated(nil, 1, "SHP-1", testNow)
	require.NoError(t, err)
	assert.Equal(t, "shipment SHP-1 created", created.Description())

	assigned, err := audit.BrokerAssigned(nil, 1, 7, testNow)
	require.NoError(t, err)
	assert.Equal(t, "broker 7 assigned", assigned.Description())

	raised, err := audit.ExceptionCreated(nil, 1, "DOC", testNow)
	require.NoError(t, err)
	assert.Equal(t, audit.ActionExceptionCreated, raised.Action())
	assert.Equal(t, "exception DOC raised", raised.Description())

	resolved, err := audit.ExceptionResolved(nil, 1, "DOC", testNow)
	require.NoError(t, err)
	assert.Equal(t, audit.ActionExceptionResolved, resolved.Action())
}

func TestEntry_BindID(t *testing.T) {
	e, err := audit.NewEntry(nil, nil, audit.ActionShipmentCreated, "", testNow)
	require.NoError(t, err)

	require.NoError(t, e.BindID(11))
	assert.Equal(t, kernel.ID(11), e.ID())
	assert.Error(t, e.BindID(12))
	assert.Error(t, new(audit.Entry).Validate())
}

func TestRestoreEntry(t *testing.T) {
	shipmentID := kernel.ID(2)
	e, err := audit.RestoreEntry(audit.Snapshot{
		ID:          5,
		ShipmentID:  &shipmentID,
		Action:      audit.ActionExceptionResolved,
		Description: "exception X resolved",
		CreatedAt:   testNow,
	})

	require.NoError(t, err)
	assert.Equal(t, kernel.ID(5), e.ID())
	assert.Equal(t, audit.ActionExceptionResolved, e.Action())

	_, err = audit.RestoreEntry(audit.Snapshot{Action: audit.ActionShipmentCreated, CreatedAt: testNow})
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
