package commands

import (
	"errors"
	"strings"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAddOrderItemCommandIsNotConstructed = errors.New(
	"AddOrderItemCommand must be created via NewAddOrderItemCommand constructor",
)

// AddOrderItemCommand adds a product line to a Pending order. Quantity and price
// are checked by the aggregate so that its own error codes reach the caller.
type AddOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	productID kernel.UUID
	quantity  int
	price     decimal.Decimal
	currency  string

	guard guard.ConstructorGuard
}

func NewAddOrderItemCommand(
	orderID kernel.UUID,
	productID kernel.UUID,
	quantity int,
	price decimal.Decimal,
	currency string,
) (AddOrderItemCommand, error) {
	if orderID.IsNil() {
		return AddOrderItemCommand{}, errs.NewValidationError(errs.NewValueIsRequiredError("orderId"))
	}

	currency = strings.TrimSpace(currency)
	if currency == "" {
		currency = kernel.DefaultCurrency
	}

	return AddOrderItemCommand{
		orderID:   orderID,
		productID: productID,
		quantity:  quantity,
		price:     price,
		currency:  currency,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AddOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderItemCommandIsNotConstructed)
}

func (c AddOrderItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AddOrderItemCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c AddOrderItemCommand) Quantity() int {
	return c.quantity
}

func (c AddOrderItemCommand) Price() decimal.Decimal {
	return c.price
}

func (c AddOrderItemCommand) Currency() string {
	return c.currency
}
