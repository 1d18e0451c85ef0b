package commands

import (
	"context"

	"orderservice/internal/core/domain/model/order"
)

type ShipOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	retry      RetryPolicy
}

func NewShipOrderCommandHandler(uowFactory OrderUoWFactory, retry RetryPolicy) ShipOrderCommandHandler {
	return ShipOrderCommandHandler{
		uowFactory: uowFactory,
		retry:      retry,
	}
}

// Handle fails with order.ErrOrderShipping unless the order is Paid.
func (h ShipOrderCommandHandler) Handle(ctx context.Context, cmd ShipOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return modifyOrder(ctx, h.uowFactory, h.retry, cmd.OrderID(), (*order.Order).Ship)
}
