package commands

import (
	"context"

	"orderservice/internal/core/domain/model/order"
)

type SetShippingAddressCommandHandler struct {
	uowFactory OrderUoWFactory
	retry      RetryPolicy
}

func NewSetShippingAddressCommandHandler(uowFactory OrderUoWFactory, retry RetryPolicy) SetShippingAddressCommandHandler {
	return SetShippingAddressCommandHandler{
		uowFactory: uowFactory,
		retry:      retry,
	}
}

// Handle replaces the shipping address regardless of the order status.
func (h SetShippingAddressCommandHandler) Handle(ctx context.Context, cmd SetShippingAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	address := cmd.Address()
	return modifyOrder(ctx, h.uowFactory, h.retry, cmd.OrderID(), func(o *order.Order) ([]order.DomainEvent, error) {
		return nil, o.SetShippingAddress(&address)
	})
}
