// Package ports declares what the application core needs from the outside world:
// persistence, transactions and event publication.
package ports

import (
	"context"
	"time"

	"orderservice/internal/core/domain/model/cart"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
)

// OrderWithCart pairs an order with its cart for read paths.
type OrderWithCart struct {
	Order *order.Order
	Cart  *cart.Cart
}

// OrderFilter narrows GetAll. Nil fields are ignored; From and To are inclusive.
type OrderFilter struct {
	Status *order.Status
	From   *time.Time
	To     *time.Time
}

// OrderPage is one page of orders plus the number of orders matching the query.
type OrderPage struct {
	Items      []OrderWithCart
	TotalCount int64
}

// OrderReader is the read side of the order store, used by query handlers.
// All listings are ordered newest first.
type OrderReader interface {
	// GetWithCart returns order.ErrOrderNotFound when id matches nothing.
	GetWithCart(ctx context.Context, id kernel.UUID) (OrderWithCart, error)

	GetByStatus(ctx context.Context, status order.Status) ([]OrderWithCart, error)

	GetByCustomer(ctx context.Context, customerID kernel.UUID, page PageRequest) (OrderPage, error)

	GetAll(ctx context.Context, filter OrderFilter, page PageRequest) (OrderPage, error)
}

// OrderRepository persists order aggregates together with the events they raised.
//
// Update and Delete check the aggregate's version against the stored row and fail
// with errs.ErrConcurrencyConflict when another writer got there first. Context
// cancellation surfaces as errs.ErrCancelled.
type OrderRepository interface {
	OrderReader

	Add(ctx context.Context, aggregate *order.Order, events ...order.DomainEvent) error

	Update(ctx context.Context, aggregate *order.Order, events ...order.DomainEvent) error

	Delete(ctx context.Context, aggregate *order.Order, events ...order.DomainEvent) error

	// Get returns order.ErrOrderNotFound when id matches nothing.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByRequestKey finds the order a merchant created with the given idempotency key.
	GetByRequestKey(ctx context.Context, merchantID kernel.UUID, requestKey string) (*order.Order, error)
}
