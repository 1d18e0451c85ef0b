package commands

import (
	"errors"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrShipOrderCommandIsNotConstructed = errors.New(
	"ShipOrderCommand must be created via NewShipOrderCommand constructor",
)

type ShipOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewShipOrderCommand(orderID kernel.UUID) (ShipOrderCommand, error) {
	if orderID.IsNil() {
		return ShipOrderCommand{}, errs.NewValidationError(errs.NewValueIsRequiredError("orderId"))
	}
	return ShipOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c ShipOrderCommand) Validate() error {
	return c.guard.Validate(ErrShipOrderCommandIsNotConstructed)
}

func (c ShipOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
