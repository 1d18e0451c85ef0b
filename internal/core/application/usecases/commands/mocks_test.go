package commands_test

import (
	"context"
	"testing"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/domain/model/cart"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order, events ...order.DomainEvent) error {
	args := m.Called(ctx, o, events)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order, events ...order.DomainEvent) error {
	args := m.Called(ctx, o, events)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, o *order.Order, events ...order.DomainEvent) error {
	args := m.Called(ctx, o, events)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByRequestKey(ctx context.Context, merchantID kernel.UUID, key string) (*order.Order, error) {
	args := m.Called(ctx, merchantID, key)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetWithCart(ctx context.Context, id kernel.UUID) (ports.OrderWithCart, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.OrderWithCart), args.Error(1)
}

func (m *MockOrderRepository) GetByStatus(ctx context.Context, status order.Status) ([]ports.OrderWithCart, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]ports.OrderWithCart), args.Error(1)
}

func (m *MockOrderRepository) GetByCustomer(
	ctx context.Context,
	customerID kernel.UUID,
	page ports.PageRequest,
) (ports.OrderPage, error) {
	args := m.Called(ctx, customerID, page)
	return args.Get(0).(ports.OrderPage), args.Error(1)
}

func (m *MockOrderRepository) GetAll(
	ctx context.Context,
	filter ports.OrderFilter,
	page ports.PageRequest,
) (ports.OrderPage, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).(ports.OrderPage), args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) Create(ctx context.Context, c *cart.Cart) (*cart.Cart, error) {
	args := m.Called(ctx, c)
	stored, _ := args.Get(0).(*cart.Cart)
	return stored, args.Error(1)
}

func (m *MockCartRepository) Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepository) Update(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoW struct {
	MockOrderUoW
}

func (m *MockUoW) CartRepository() ports.CartRepository {
	args := m.Called()
	return args.Get(0).(ports.CartRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

func newPendingOrder(t *testing.T, withItem bool) *order.Order {
	t.Helper()

	name, err := order.NewName("AB123")
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), name, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "")
	require.NoError(t, err)

	if withItem {
		_, err = o.AddItem(kernel.NewUUID(), 2, decimal.RequireFromString("4.25"), "")
		require.NoError(t, err)
	}
	return o
}

func newOrderUoW(repo *MockOrderRepository) (*MockOrderUoWFactory, *MockOrderUoW) {
	uow := &MockOrderUoW{}
	uow.On("OrderRepository").Return(repo)

	factory := &MockOrderUoWFactory{}
	factory.On("Create").Return(uow)
	return factory, uow
}
