package commands

import (
	"errors"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrRemoveOrderItemCommandIsNotConstructed = errors.New(
	"RemoveOrderItemCommand must be created via NewRemoveOrderItemCommand constructor",
)

type RemoveOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	productID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveOrderItemCommand(orderID, productID kernel.UUID) (RemoveOrderItemCommand, error) {
	var errList []error
	if orderID.IsNil() {
		errList = append(errList, errs.NewValueIsRequiredError("orderId"))
	}
	if productID.IsNil() {
		errList = append(errList, errs.NewValueIsRequiredError("productId"))
	}
	if err := errors.Join(errList...); err != nil {
		return RemoveOrderItemCommand{}, errs.NewValidationError(err)
	}

	return RemoveOrderItemCommand{
		orderID:   orderID,
		productID: productID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrderItemCommandIsNotConstructed)
}

func (c RemoveOrderItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RemoveOrderItemCommand) ProductID() kernel.UUID {
	return c.productID
}
