package commands_test

import (
	"testing"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// expectModify wires one load-modify-save round for o.
func expectModify(t *testing.T, o *order.Order, eventName string) (*MockOrderUoWFactory, *MockOrderRepository) {
	t.Helper()

	ctx := t.Context()
	repo := &MockOrderRepository{}
	factory, uow := newOrderUoW(repo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o, mock.MatchedBy(func(events []order.DomainEvent) bool {
			if eventName == "" {
				return len(events) == 0
			}
			return len(events) == 1 && events[0].EventName() == eventName
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	return factory, repo
}

func TestAddOrderItemCommandHandler_Handle(t *testing.T) {
	t.Parallel()

	o := newPendingOrder(t, false)
	factory, repo := expectModify(t, o, order.EventOrderItemAdded)

	cmd, err := commands.NewAddOrderItemCommand(o.ID(), kernel.NewUUID(), 3, decimal.RequireFromString("1.5"), "")
	require.NoError(t, err)
	assert.Equal(t, kernel.DefaultCurrency, cmd.Currency())

	err = commands.NewAddOrderItemCommandHandler(factory, commands.NoRetry).Handle(t.Context(), cmd)
	require.NoError(t, err)

	assert.Len(t, o.Items(), 1)
	assert.True(t, decimal.RequireFromString("4.5").Equal(o.TotalAmount().Amount()))
	repo.AssertExpectations(t)
}

func TestAddOrderItemCommandHandler_InvalidPrice(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	o := newPendingOrder(t, false)
	repo := &MockOrderRepository{}
	factory, uow := newOrderUoW(repo)

	uow.On("Begin", ctx).Return(nil).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewAddOrderItemCommand(o.ID(), kernel.NewUUID(), 1, decimal.Zero, "USD")
	require.NoError(t, err)

	err = commands.NewAddOrderItemCommandHandler(factory, commands.NoRetry).Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrInvalidItemPrice)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveOrderItemCommandHandler_Handle(t *testing.T) {
	t.Parallel()

	o := newPendingOrder(t, true)
	productID := o.Items()[0].ProductID().UUID()
	factory, repo := expectModify(t, o, order.EventOrderItemRemoved)

	cmd, err := commands.NewRemoveOrderItemCommand(o.ID(), productID)
	require.NoError(t, err)

	err = commands.NewRemoveOrderItemCommandHandler(factory, commands.NoRetry).Handle(t.Context(), cmd)
	require.NoError(t, err)

	assert.Empty(t, o.Items())
	assert.True(t, o.TotalAmount().IsZero())
	repo.AssertExpectations(t)
}

func TestNewRemoveOrderItemCommand_RequiresIDs(t *testing.T) {
	t.Parallel()

	_, err := commands.NewRemoveOrderItemCommand(kernel.UUID{}, kernel.UUID{})

	var coded *errs.Error
	require.ErrorAs(t, err, &coded)
	assert.Len(t, coded.Details, 2)
}

func TestPayOrderCommandHandler_Handle(t *testing.T) {
	t.Parallel()

	o := newPendingOrder(t, true)
	factory, repo := expectModify(t, o, order.EventOrderPaid)

	cmd, err := commands.NewPayOrderCommand(o.ID())
	require.NoError(t, err)

	err = commands.NewPayOrderCommandHandler(factory, commands.NoRetry).Handle(t.Context(), cmd)
	require.NoError(t, err)

	assert.Equal(t, order.Paid, o.Status())
	require.NotNil(t, o.PaidAt())
	repo.AssertExpectations(t)
}

func TestShipOrderCommandHandler_Handle(t *testing.T) {
	t.Parallel()

	o := newPendingOrder(t, true)
	_, err := o.MarkAsPaid()
	require.NoError(t, err)
	factory, repo := expectModify(t, o, order.EventOrderShipped)

	cmd, err := commands.NewShipOrderCommand(o.ID())
	require.NoError(t, err)

	err = commands.NewShipOrderCommandHandler(factory, commands.NoRetry).Handle(t.Context(), cmd)
	require.NoError(t, err)

	assert.Equal(t, order.Shipped, o.Status())
	assert.NotNil(t, o.ShippedAt())
	repo.AssertExpectations(t)
}

func TestShipOrderCommandHandler_PendingOrder(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	o := newPendingOrder(t, true)
	repo := &MockOrderRepository{}
	factory, uow := newOrderUoW(repo)

	uow.On("Begin", ctx).Return(nil).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewShipOrderCommand(o.ID())
	require.NoError(t, err)

	err = commands.NewShipOrderCommandHandler(factory, commands.NoRetry).Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrOrderShipping)
}

func TestSetShippingAddressCommandHandler_Handle(t *testing.T) {
	t.Parallel()

	o := newPendingOrder(t, false)
	factory, repo := expectModify(t, o, "")

	cmd, err := commands.NewSetShippingAddressCommand(o.ID(), "1 Main St", "Springfield", "IL", "62701", "US")
	require.NoError(t, err)

	err = commands.NewSetShippingAddressCommandHandler(factory, commands.NoRetry).Handle(t.Context(), cmd)
	require.NoError(t, err)

	require.NotNil(t, o.ShippingAddress())
	assert.Equal(t, "Springfield", o.ShippingAddress().City())
	repo.AssertExpectations(t)
}

func TestNewSetShippingAddressCommand_IncompleteAddress(t *testing.T) {
	t.Parallel()

	_, err := commands.NewSetShippingAddressCommand(kernel.NewUUID(), "1 Main St", "", "IL", "", "US")
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	require.ErrorIs(t, err, kernel.ErrInvalidAddress)
}
