package ports

import (
	"context"

	"orderservice/internal/core/domain/model/cart"
	"orderservice/internal/core/domain/model/kernel"
)

// CartRepository persists carts.
type CartRepository interface {
	// Create stores a new cart with its items and returns it as stored.
	Create(ctx context.Context, c *cart.Cart) (*cart.Cart, error)

	// Get returns cart.ErrCartNotFound when id matches nothing.
	Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error)

	// Update replaces the stored items of an existing cart.
	Update(ctx context.Context, c *cart.Cart) error
}
