package commands

import (
	"errors"
	"strings"
	"unicode/utf8"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CartItemInput is one cart line as supplied by a client.
type CartItemInput struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
}

// CreateOrderCommand places a new order together with its cart.
//
//	cmd, err := NewCreateOrderCommand("AB123", customerID, merchantID, []CartItemInput{
//	    {Name: "Coffee", Quantity: 2, Price: decimal.RequireFromString("3.50")},
//	}, "")
//	view, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderName  string
	customerID kernel.UUID
	merchantID kernel.UUID
	cartItems  []CartItemInput
	requestKey string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand checks that every required field is present. requestKey is
// optional; when set, a second order with the same merchant and key is rejected.
// A key longer than kernel.MaxTextLength characters is invalid.
func NewCreateOrderCommand(
	orderName string,
	customerID kernel.UUID,
	merchantID kernel.UUID,
	cartItems []CartItemInput,
	requestKey string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderName(orderName),
		cmd.setCustomerID(customerID),
		cmd.setMerchantID(merchantID),
		cmd.setCartItems(cartItems),
		cmd.setRequestKey(requestKey),
	); err != nil {
		return CreateOrderCommand{}, errs.NewValidationError(err)
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderName() string {
	return c.orderName
}

func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateOrderCommand) MerchantID() kernel.UUID {
	return c.merchantID
}

func (c CreateOrderCommand) CartItems() []CartItemInput {
	return append([]CartItemInput(nil), c.cartItems...)
}

func (c CreateOrderCommand) RequestKey() string {
	return c.requestKey
}

func (c *CreateOrderCommand) setOrderName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("orderName")
	}
	c.orderName = name
	return nil
}

func (c *CreateOrderCommand) setCustomerID(id kernel.UUID) error {
	if id.IsNil() {
		return errs.NewValueIsRequiredError("customerId")
	}
	c.customerID = id
	return nil
}

func (c *CreateOrderCommand) setMerchantID(id kernel.UUID) error {
	if id.IsNil() {
		return errs.NewValueIsRequiredError("merchantId")
	}
	c.merchantID = id
	return nil
}

func (c *CreateOrderCommand) setCartItems(items []CartItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("cart")
	}
	c.cartItems = append([]CartItemInput(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setRequestKey(key string) error {
	key = strings.TrimSpace(key)
	if n := utf8.RuneCountInString(key); n > kernel.MaxTextLength {
		return errs.NewValueIsOutOfRangeError("requestId", n, 0, kernel.MaxTextLength)
	}
	c.requestKey = key
	return nil
}
