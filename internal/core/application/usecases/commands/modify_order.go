package commands

import (
	"context"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"
)

// orderMutation changes a loaded order and returns the events it raised.
type orderMutation func(o *order.Order) ([]order.DomainEvent, error)

// modifyOrder loads an order, applies mutate and saves it with the raised events
// in a fresh unit of work. Each retry after a concurrency conflict reloads the order.
func modifyOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	retry RetryPolicy,
	orderID kernel.UUID,
	mutate orderMutation,
) error {
	return retry.run(ctx, func() error {
		uow := uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return errs.FromContext(err)
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		repo := uow.OrderRepository()
		o, err := repo.Get(ctx, orderID)
		if err != nil {
			return err
		}

		events, err := mutate(o)
		if err != nil {
			return err
		}

		if err = repo.Update(ctx, o, events...); err != nil {
			return err
		}

		return errs.FromContext(uow.Commit(ctx))
	})
}
