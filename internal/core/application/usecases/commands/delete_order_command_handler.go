package commands

import (
	"context"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"
)

// DeleteOrderCommandHandler marks an order Deleted and removes it from storage.
// The OrderDeleted event is stored in the same transaction. The cart is kept.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	retry      RetryPolicy
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory, retry RetryPolicy) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		retry:      retry,
	}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if cmd.OrderID().IsNil() {
		return order.ErrOrderNotFound.WithMessagef("order id is empty")
	}

	return h.retry.run(ctx, func() error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return errs.FromContext(err)
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		repo := uow.OrderRepository()
		o, err := repo.Get(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		events, err := o.Delete()
		if err != nil {
			return err
		}

		if err = repo.Delete(ctx, o, events...); err != nil {
			return err
		}

		return errs.FromContext(uow.Commit(ctx))
	})
}
