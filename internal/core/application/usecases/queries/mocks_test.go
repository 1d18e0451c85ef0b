package queries_test

import (
	"context"
	"testing"

	"orderservice/internal/core/domain/model/cart"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) GetWithCart(ctx context.Context, id kernel.UUID) (ports.OrderWithCart, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.OrderWithCart), args.Error(1)
}

func (m *MockOrderReader) GetByStatus(ctx context.Context, status order.Status) ([]ports.OrderWithCart, error) {
	args := m.Called(ctx, status)
	found, _ := args.Get(0).([]ports.OrderWithCart)
	return found, args.Error(1)
}

func (m *MockOrderReader) GetByCustomer(
	ctx context.Context,
	customerID kernel.UUID,
	page ports.PageRequest,
) (ports.OrderPage, error) {
	args := m.Called(ctx, customerID, page)
	return args.Get(0).(ports.OrderPage), args.Error(1)
}

func (m *MockOrderReader) GetAll(
	ctx context.Context,
	filter ports.OrderFilter,
	page ports.PageRequest,
) (ports.OrderPage, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).(ports.OrderPage), args.Error(1)
}

func newOrderWithCart(t *testing.T, customerID kernel.UUID) ports.OrderWithCart {
	t.Helper()

	item, err := cart.NewItem(kernel.NewUUID(), "Bagel", 1, decimal.RequireFromString("2.20"))
	require.NoError(t, err)
	c, err := cart.NewCart(kernel.NewUUID(), []cart.Item{item})
	require.NoError(t, err)

	name, err := order.NewName("QW123")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), name, customerID, kernel.NewUUID(), c.ID(), "")
	require.NoError(t, err)

	return ports.OrderWithCart{Order: o, Cart: c}
}
