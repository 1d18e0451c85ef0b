// Package cart models the shopping cart captured when an order is placed.
// A cart belongs to exactly one order, which references it by ID.
package cart

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")

	ErrCartNotFound = errs.New(errs.KindNotFound, "CART_NOT_FOUND", "cart not found")
)

// Item is one line of a cart.
type Item struct {
	id       kernel.UUID
	name     string
	quantity int
	price    decimal.Decimal
}

// NewItem validates a cart line. Price may be zero for free items.
// Every value must fit its storage column unchanged.
func NewItem(id kernel.UUID, name string, quantity int, price decimal.Decimal) (Item, error) {
	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	name = strings.TrimSpace(name)
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		errList = append(errList, errs.NewValueIsRequiredError("cartItem.name"))
	case n > kernel.MaxTextLength:
		errList = append(errList, errs.NewValueIsOutOfRangeError("cartItem.name", n, 1, kernel.MaxTextLength))
	}
	if quantity <= 0 || quantity > kernel.MaxQuantity {
		errList = append(errList, errs.NewValueIsOutOfRangeError("cartItem.quantity", quantity, 1, kernel.MaxQuantity))
	}
	switch {
	case price.IsNegative():
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"cartItem.price", fmt.Errorf("%s is negative", price.String())))
	case !kernel.FitsAmount(price):
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"cartItem.price", fmt.Errorf("%s needs more than %d decimal places or 15 integer digits",
				price.String(), kernel.MaxScale)))
	}
	if err := errors.Join(errList...); err != nil {
		return Item{}, err
	}

	return Item{id: id, name: name, quantity: quantity, price: price}, nil
}

func (i Item) ID() kernel.UUID {
	return i.id
}

func (i Item) Name() string {
	return i.name
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) Price() decimal.Decimal {
	return i.price
}

// Cart is an ordered list of items.
type Cart struct {
	kernel.Entity

	items         []Item
	isConstructed bool
}

// NewCart requires at least one item.
func NewCart(id kernel.UUID, items []Item) (*Cart, error) {
	return newCart(id, time.Now().UTC(), items)
}

// RestoreCart rebuilds a stored cart.
func RestoreCart(id kernel.UUID, createdAt time.Time, items []Item) (*Cart, error) {
	return newCart(id, createdAt, items)
}

func newCart(id kernel.UUID, createdAt time.Time, items []Item) (*Cart, error) {
	entity, err := kernel.NewEntity(id, createdAt)
	if err != nil {
		return nil, err
	}

	c := &Cart{Entity: entity, isConstructed: true}
	if err = c.ReplaceItems(items); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []Item {
	return slices.Clone(c.items)
}

// ReplaceItems swaps the whole line list.
func (c *Cart) ReplaceItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("cart.cartItems")
	}
	for _, item := range items {
		if item.id.IsNil() {
			return errs.NewValueIsInvalidErrorWithCause("cart.cartItems", errors.New("item was not built via NewItem"))
		}
	}

	c.items = slices.Clone(items)
	return nil
}
