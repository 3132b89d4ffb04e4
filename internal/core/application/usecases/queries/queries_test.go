package queries_test

import (
	"testing"

	"preclear/internal/core/application/usecases/queries"
	"preclear/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries_RejectNonPositiveIDs(t *testing.T) {
	_, err := queries.NewGetShipmentQuery(0)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewListShipmentsByOwnerQuery(-1)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewListShipmentsByBrokerQuery(0)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewListExceptionsQuery(0, true)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewListAuditEntriesByShipmentQuery(0)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewListAuditEntriesByUserQuery(-5)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	assert.ErrorIs(t, queries.GetShipmentQuery{}.Validate(), queries.ErrGetShipmentQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ListShipmentsQuery{}.Validate(), queries.ErrListShipmentsQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ListExceptionsQuery{}.Validate(), queries.ErrListExceptionsQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ListAuditEntriesQuery{}.Validate(), queries.ErrListAuditEntriesQueryIsNotConstructed)
}

func TestQueries_Accessors(t *testing.T) {
	byOwner, err := queries.NewListShipmentsByOwnerQuery(3)
	require.NoError(t, err)
	assert.Equal(t, queries.ByOwner, byOwner.Filter())

	byBroker, err := queries.NewListShipmentsByBrokerQuery(4)
	require.NoError(t, err)
	assert.Equal(t, queries.ByBroker, byBroker.Filter())

	open, err := queries.NewListExceptionsQuery(5, true)
	require.NoError(t, err)
	assert.True(t, open.OpenOnly())

	byUser, err := queries.NewListAuditEntriesByUserQuery(6)
	require.NoError(t, err)
	assert.Equal(t, queries.ByUser, byUser.Filter())
	assert.NoError(t, byUser.Validate())
}
