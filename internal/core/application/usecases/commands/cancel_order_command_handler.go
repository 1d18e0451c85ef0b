package commands

import (
	"context"

	"orderservice/internal/core/domain/model/order"
)

// CancelOrderCommandHandler cancels orders. A cancel racing with another write is
// retried according to its RetryPolicy.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	retry      RetryPolicy
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, retry RetryPolicy) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		retry:      retry,
	}
}

// Handle fails with order.ErrOrderNotFound or order.ErrAlreadyCancelled.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return modifyOrder(ctx, h.uowFactory, h.retry, cmd.OrderID(), (*order.Order).Cancel)
}
