package commands

import (
	"errors"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrSetShippingAddressCommandIsNotConstructed = errors.New(
	"SetShippingAddressCommand must be created via NewSetShippingAddressCommand constructor",
)

type SetShippingAddressCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	address kernel.Address

	guard guard.ConstructorGuard
}

func NewSetShippingAddressCommand(
	orderID kernel.UUID,
	street, city, state, postalCode, country string,
) (SetShippingAddressCommand, error) {
	var errList []error
	if orderID.IsNil() {
		errList = append(errList, errs.NewValueIsRequiredError("orderId"))
	}

	address, err := kernel.NewAddress(street, city, state, postalCode, country)
	if err != nil {
		errList = append(errList, err)
	}

	if err = errors.Join(errList...); err != nil {
		return SetShippingAddressCommand{}, errs.NewValidationError(err)
	}

	return SetShippingAddressCommand{
		orderID: orderID,
		address: address,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SetShippingAddressCommand) Validate() error {
	return c.guard.Validate(ErrSetShippingAddressCommandIsNotConstructed)
}

func (c SetShippingAddressCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SetShippingAddressCommand) Address() kernel.Address {
	return c.address
}
