package commands

import (
	"context"

	"orderservice/internal/core/domain/model/order"
)

type RemoveOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
	retry      RetryPolicy
}

func NewRemoveOrderItemCommandHandler(uowFactory OrderUoWFactory, retry RetryPolicy) RemoveOrderItemCommandHandler {
	return RemoveOrderItemCommandHandler{
		uowFactory: uowFactory,
		retry:      retry,
	}
}

// Handle fails with order.ErrOrderItemNotFound when the product is not in the order.
func (h RemoveOrderItemCommandHandler) Handle(ctx context.Context, cmd RemoveOrderItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return modifyOrder(ctx, h.uowFactory, h.retry, cmd.OrderID(), func(o *order.Order) ([]order.DomainEvent, error) {
		return o.RemoveItem(cmd.ProductID())
	})
}
