package orderrepo_test

import (
	"testing"
	"time"

	"orderservice/internal/adapters/out/postgres/cartrepo"
	"orderservice/internal/core/domain/model/cart"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any, events ...order.DomainEvent) {
	m.Called(id, aggregate, events)
}

type orderFixture struct {
	customerID kernel.UUID
	merchantID kernel.UUID
	status     order.Status
	createdAt  time.Time
	requestKey string
	items      int
}

// storeCart inserts a one-line cart and returns its ID.
func storeCart(t *testing.T, db *gorm.DB) kernel.UUID {
	t.Helper()

	item, err := cart.NewItem(kernel.NewUUID(), "Muffin", 2, decimal.RequireFromString("1.75"))
	require.NoError(t, err)
	c, err := cart.NewCart(kernel.NewUUID(), []cart.Item{item})
	require.NoError(t, err)

	stored, err := cartrepo.NewGormCartRepository(db).Create(t.Context(), c)
	require.NoError(t, err)
	return stored.ID()
}

// buildOrder restores an order in the requested state so tests control created_at.
func buildOrder(t *testing.T, db *gorm.DB, fixture orderFixture) *order.Order {
	t.Helper()

	if fixture.customerID.IsNil() {
		fixture.customerID = kernel.NewUUID()
	}
	if fixture.merchantID.IsNil() {
		fixture.merchantID = kernel.NewUUID()
	}
	if fixture.status == order.Unknown {
		fixture.status = order.Pending
	}
	if fixture.createdAt.IsZero() {
		fixture.createdAt = time.Now().UTC()
	}

	items := make([]order.ItemSnapshot, 0, fixture.items)
	for i := range fixture.items {
		items = append(items, order.ItemSnapshot{
			ProductID: kernel.NewUUID(),
			Quantity:  i + 1,
			UnitPrice: decimal.RequireFromString("2.50"),
			Currency:  "USD",
		})
	}

	o, err := order.RestoreOrder(order.Snapshot{
		ID:         kernel.NewUUID(),
		Name:       "AB123",
		CustomerID: fixture.customerID,
		MerchantID: fixture.merchantID,
		CartID:     storeCart(t, db),
		Status:     fixture.status,
		Items:      items,
		CreatedAt:  fixture.createdAt,
		RequestKey: fixture.requestKey,
	})
	require.NoError(t, err)
	return o
}
