package commands

import (
	"context"

	"orderservice/internal/core/domain/model/order"
)

type AddOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
	retry      RetryPolicy
}

func NewAddOrderItemCommandHandler(uowFactory OrderUoWFactory, retry RetryPolicy) AddOrderItemCommandHandler {
	return AddOrderItemCommandHandler{
		uowFactory: uowFactory,
		retry:      retry,
	}
}

func (h AddOrderItemCommandHandler) Handle(ctx context.Context, cmd AddOrderItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return modifyOrder(ctx, h.uowFactory, h.retry, cmd.OrderID(), func(o *order.Order) ([]order.DomainEvent, error) {
		return o.AddItem(cmd.ProductID(), cmd.Quantity(), cmd.Price(), cmd.Currency())
	})
}
