package commands

import (
	"errors"
	"fmt"
	"strings"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand replaces the descriptive fields and cart lines of a Pending order.
// routeID is the ID the caller addressed; it must equal the ID in the payload.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	orderName  string
	customerID kernel.UUID
	merchantID kernel.UUID
	cartItems  []CartItemInput

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(
	routeID kernel.UUID,
	orderID kernel.UUID,
	orderName string,
	customerID kernel.UUID,
	merchantID kernel.UUID,
	cartItems []CartItemInput,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(routeID, orderID),
		cmd.setOrderName(orderName),
		cmd.setCustomerID(customerID),
		cmd.setMerchantID(merchantID),
		cmd.setCartItems(cartItems),
	); err != nil {
		return UpdateOrderCommand{}, errs.NewValidationError(err)
	}

	return cmd, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderCommand) OrderName() string {
	return c.orderName
}

func (c UpdateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c UpdateOrderCommand) MerchantID() kernel.UUID {
	return c.merchantID
}

func (c UpdateOrderCommand) CartItems() []CartItemInput {
	return append([]CartItemInput(nil), c.cartItems...)
}

func (c *UpdateOrderCommand) setOrderID(routeID, orderID kernel.UUID) error {
	if orderID.IsNil() {
		return errs.NewValueIsRequiredError("id")
	}
	if !routeID.IsEqual(orderID) {
		return errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("route id %s does not match body id %s", routeID, orderID))
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setOrderName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("orderName")
	}
	c.orderName = name
	return nil
}

func (c *UpdateOrderCommand) setCustomerID(id kernel.UUID) error {
	if id.IsNil() {
		return errs.NewValueIsRequiredError("customerId")
	}
	c.customerID = id
	return nil
}

func (c *UpdateOrderCommand) setMerchantID(id kernel.UUID) error {
	if id.IsNil() {
		return errs.NewValueIsRequiredError("merchantId")
	}
	c.merchantID = id
	return nil
}

func (c *UpdateOrderCommand) setCartItems(items []CartItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("cart")
	}
	c.cartItems = append([]CartItemInput(nil), items...)
	return nil
}
