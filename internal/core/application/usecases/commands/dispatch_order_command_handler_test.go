package commands_test

import (
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func confirmedOrder(t *testing.T) *order.Order {
	t.Helper()

	o := pendingOrder(t)
	now := time.Date(2025, time.March, 10, 13, 0, 0, 0, time.UTC)
	require.NoError(t, o.TransitionTo(order.StatusConfirmed, now))
	return o
}

func TestDispatchOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := confirmedOrder(t)
	cmd, _ := commands.NewDispatchOrderCommand(o.ID())

	courier := new(MockCourierClient)
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		courier.On("CreateConsignment", mock.Anything, mock.AnythingOfType("services.ConsignmentRequest")).
			Return(ports.Consignment{ConsignmentID: "CN-7", TrackingCode: "TRK-7", Status: "pending_pickup"}, nil).Once(),
		repo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDispatchOrderCommandHandler(factory, courier)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.StatusShipped, o.Status())
	assert.Equal(t, "CN-7", o.ConsignmentID())
	assert.Equal(t, "TRK-7", o.TrackingCode())
	assert.Equal(t, "pending_pickup", o.CourierStatus())

	sent := courier.Calls[0].Arguments.Get(1).(services.ConsignmentRequest)
	assert.Equal(t, "SF-ORD-1001", sent.Invoice)
	assert.Equal(t, int64(560), sent.CashToCollect)

	courier.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDispatchOrderCommandHandler_Handle_CarrierRejection(t *testing.T) {
	ctx := t.Context()
	o := confirmedOrder(t)
	cmd, _ := commands.NewDispatchOrderCommand(o.ID())

	courier := new(MockCourierClient)
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		courier.On("CreateConsignment", mock.Anything, mock.AnythingOfType("services.ConsignmentRequest")).
			Return(ports.Consignment{}, &ports.DispatchRejectedError{Reason: "coverage area closed"}).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDispatchOrderCommandHandler(factory, courier)
	err := h.Handle(ctx, cmd)

	var rejected *ports.DispatchRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "coverage area closed", rejected.Reason)

	assert.Equal(t, order.StatusConfirmed, o.Status())
	assert.False(t, o.IsDispatched())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestDispatchOrderCommandHandler_Handle_UnknownOutcome(t *testing.T) {
	ctx := t.Context()
	o := confirmedOrder(t)
	cmd, _ := commands.NewDispatchOrderCommand(o.ID())

	courier := new(MockCourierClient)
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		courier.On("CreateConsignment", mock.Anything, mock.AnythingOfType("services.ConsignmentRequest")).
			Return(ports.Consignment{}, ports.ErrDispatchOutcomeUnknown).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDispatchOrderCommandHandler(factory, courier)
	require.ErrorIs(t, h.Handle(ctx, cmd), ports.ErrDispatchOutcomeUnknown)
	assert.False(t, o.IsDispatched())
}

func TestDispatchOrderCommandHandler_Handle_AlreadyDispatched(t *testing.T) {
	ctx := t.Context()
	o := confirmedOrder(t)
	now := time.Date(2025, time.March, 10, 14, 0, 0, 0, time.UTC)
	require.NoError(t, o.MarkDispatched("CN-1", "TRK-1", "pending_pickup", now))

	cmd, _ := commands.NewDispatchOrderCommand(o.ID())

	courier := new(MockCourierClient)
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDispatchOrderCommandHandler(factory, courier)
	require.ErrorIs(t, h.Handle(ctx, cmd), order.ErrAlreadyDispatched)

	assert.Equal(t, "CN-1", o.ConsignmentID())
	courier.AssertNotCalled(t, "CreateConsignment", mock.Anything, mock.Anything)
}
