package commands_test

import (
	"errors"
	"testing"

	"preclear/internal/core/application/usecases/commands"
	"preclear/internal/core/domain/model/audit"
	"preclear/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateShipmentCommand(t *testing.T) commands.CreateShipmentCommand {
	t.Helper()
	cmd, err := commands.NewCreateShipmentCommand(idPtr(9), 5, "Laptops", commands.ShipmentDetailsInput{Mode: "air"})
	require.NoError(t, err)
	return cmd
}

func TestCreateShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newUoWFixture()

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.shipments.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).
			Run(func(args mock.Arguments) {
				require.NoError(t, args.Get(1).(*shipment.Shipment).BindID(41))
			}).
			Return(nil).Once(),
		f.audit.On("Append", ctx, mock.MatchedBy(func(e *audit.Entry) bool {
			return e.Action() == audit.ActionShipmentCreated &&
				e.ShipmentID() != nil && e.ShipmentID().Int64() == 41 &&
				*e.UserID() == *idPtr(9)
		})).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateShipmentCommandHandler(f.shipFact, shipment.NewReferenceGenerator()).WithClock(fixedClock)
	s, err := h.Handle(ctx, newCreateShipmentCommand(t))

	require.NoError(t, err)
	assert.Equal(t, int64(41), s.ID().Int64())
	assert.Equal(t, shipment.Draft, s.Status())
	assert.Equal(t, shipment.ModeAir, s.Details().Mode)
	assert.Equal(t, testNow, s.CreatedAt())
	f.assertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_ValidationError(t *testing.T) {
	f := newUoWFixture()
	h := commands.NewCreateShipmentCommandHandler(f.shipFact, shipment.NewReferenceGenerator())

	_, err := h.Handle(t.Context(), commands.CreateShipmentCommand{})

	require.ErrorIs(t, err, commands.ErrCreateShipmentCommandIsNotConstructed)
	f.shipFact.AssertNotCalled(t, "Create")
}

func TestCreateShipmentCommandHandler_Handle_Failures(t *testing.T) {
	boom := errors.New("boom")

	t.Run("begin", func(t *testing.T) {
		ctx := t.Context()
		f := newUoWFixture()
		f.uow.On("Begin", ctx).Return(boom).Once()

		h := commands.NewCreateShipmentCommandHandler(f.shipFact, shipment.NewReferenceGenerator())
		_, err := h.Handle(ctx, newCreateShipmentCommand(t))

		require.ErrorIs(t, err, boom)
		f.shipments.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("add", func(t *testing.T) {
		ctx := t.Context()
		f := newUoWFixture()
		f.uow.On("Begin", ctx).Return(nil).Once()
		f.shipments.On("Add", ctx, mock.Anything).Return(boom).Once()

		h := commands.NewCreateShipmentCommandHandler(f.shipFact, shipment.NewReferenceGenerator())
		_, err := h.Handle(ctx, newCreateShipmentCommand(t))

		require.ErrorIs(t, err, boom)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		f.uow.AssertCalled(t, "Rollback", ctx)
	})

	t.Run("commit", func(t *testing.T) {
		ctx := t.Context()
		f := newUoWFixture()
		f.uow.On("Begin", ctx).Return(nil).Once()
		f.shipments.On("Add", ctx, mock.Anything).Return(nil).Once()
		f.audit.On("Append", ctx, mock.Anything).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(boom).Once()

		h := commands.NewCreateShipmentCommandHandler(f.shipFact, shipment.NewReferenceGenerator())
		s, err := h.Handle(ctx, newCreateShipmentCommand(t))

		require.ErrorIs(t, err, boom)
		assert.Nil(t, s)
	})
}
