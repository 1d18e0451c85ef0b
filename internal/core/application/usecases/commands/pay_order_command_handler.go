package commands

import (
	"context"

	"orderservice/internal/core/domain/model/order"
)

type PayOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	retry      RetryPolicy
}

func NewPayOrderCommandHandler(uowFactory OrderUoWFactory, retry RetryPolicy) PayOrderCommandHandler {
	return PayOrderCommandHandler{
		uowFactory: uowFactory,
		retry:      retry,
	}
}

// Handle fails with order.ErrOrderNotPending or order.ErrCannotPayOrder for an empty order.
func (h PayOrderCommandHandler) Handle(ctx context.Context, cmd PayOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return modifyOrder(ctx, h.uowFactory, h.retry, cmd.OrderID(), (*order.Order).MarkAsPaid)
}
