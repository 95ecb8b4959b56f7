package commands_test

import (
	"testing"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedOrder(t *testing.T, method order.PaymentMethod) *order.Order {
	t.Helper()

	p := validCreateOrderParams(t)
	orderID, err := kernel.NewOrderID(2025, 42)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(order.NewOrderParams{
		ID:              kernel.NewUUID(),
		OrderID:         orderID,
		CustomerID:      p.CustomerID,
		Customer:        p.Customer,
		PickupAddress:   p.PickupAddress,
		DeliveryAddress: p.DeliveryAddress,
		Items:           p.Items,
		Pricing:         p.Pricing,
		PaymentMethod:   method,
		PickupSlot:      p.PickupSlot,
	})
	require.NoError(t, err)
	return aggregate
}

func TestUpdateOrderCommandHandler_Handle_StatusChange(t *testing.T) {
	ctx := t.Context()
	aggregate := storedOrder(t, order.PaymentMethodCOD)
	cmd, err := commands.NewUpdateOrderCommand(aggregate.ID(), commands.UpdateOrderParams{
		Status: order.InProcess,
		Note:   "items at facility",
	})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockOrderNotifier)
	notifier.On("NotifyStatusChanged", mock.Anything, aggregate).Once()

	h := commands.NewUpdateOrderCommandHandler(factory, notifier)
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.InProcess, updated.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_PaymentBeforeRefundTransition(t *testing.T) {
	ctx := t.Context()
	aggregate := storedOrder(t, order.PaymentMethodOnline)
	cmd, err := commands.NewUpdateOrderCommand(aggregate.ID(), commands.UpdateOrderParams{
		Status:        order.Refunded,
		PaymentStatus: order.PaymentStatusRefunded,
		PaymentID:     "pay_1",
		PaidAmount:    120,
	})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockOrderNotifier)
	notifier.On("NotifyStatusChanged", mock.Anything, aggregate).Once()

	h := commands.NewUpdateOrderCommandHandler(factory, notifier)
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Refunded, updated.Status())
	assert.Equal(t, order.PaymentStatusRefunded, updated.PaymentStatus())
}

func TestUpdateOrderCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	aggregate := storedOrder(t, order.PaymentMethodCOD)
	require.NoError(t, aggregate.TransitionTo(order.Completed, "", nil))

	cmd, err := commands.NewUpdateOrderCommand(aggregate.ID(), commands.UpdateOrderParams{
		Status: order.InProcess,
	})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory, new(MockOrderNotifier))
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewUpdateOrderCommand(id, commands.UpdateOrderParams{
		WeightKg: 3.5,
	})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, id).
			Return(nil, errs.NewObjectNotFoundError("orderId", id)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory, new(MockOrderNotifier))
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUpdateOrderCommandHandler_Handle_VersionConflict(t *testing.T) {
	ctx := t.Context()
	aggregate := storedOrder(t, order.PaymentMethodCOD)
	cmd, err := commands.NewUpdateOrderCommand(aggregate.ID(), commands.UpdateOrderParams{
		Status: order.PickedUp,
	})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).
			Return(errs.NewVersionIsInvalidErrorWithCause("order version")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockOrderNotifier)

	h := commands.NewUpdateOrderCommandHandler(factory, notifier)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	notifier.AssertNotCalled(t, "NotifyStatusChanged", mock.Anything, mock.Anything)
}

func TestNewUpdateOrderCommand_NoChanges(t *testing.T) {
	_, err := commands.NewUpdateOrderCommand(kernel.NewUUID(), commands.UpdateOrderParams{})

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewUpdateOrderCommand_InvalidID(t *testing.T) {
	_, err := commands.NewUpdateOrderCommand(kernel.UUID{}, commands.UpdateOrderParams{
		WeightKg: 1,
	})

	require.Error(t, err)
}
