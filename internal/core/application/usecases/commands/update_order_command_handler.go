package commands

import (
	"context"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"
)

// UpdateOrderCommandHandler rewrites an order's name, customer, merchant and cart lines.
type UpdateOrderCommandHandler struct {
	uowFactory UoWFactory
	retry      RetryPolicy
}

func NewUpdateOrderCommandHandler(uowFactory UoWFactory, retry RetryPolicy) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		retry:      retry,
	}
}

// Handle fails with order.ErrOrderNotFound, order.ErrOrderNotPending or a domain
// error for a malformed order name.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	name, err := order.NewName(cmd.OrderName())
	if err != nil {
		return err
	}

	items, err := buildCartItems(cmd.CartItems())
	if err != nil {
		return err
	}

	return h.retry.run(ctx, func() error {
		uow := h.uowFactory.Create()
		if beginErr := uow.Begin(ctx); beginErr != nil {
			return errs.FromContext(beginErr)
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		orderRepo := uow.OrderRepository()
		cartRepo := uow.CartRepository()

		o, getErr := orderRepo.Get(ctx, cmd.OrderID())
		if getErr != nil {
			return getErr
		}

		if updErr := o.UpdateDetails(name, cmd.CustomerID(), cmd.MerchantID()); updErr != nil {
			return updErr
		}

		c, getErr := cartRepo.Get(ctx, o.CartID())
		if getErr != nil {
			return getErr
		}
		if replErr := c.ReplaceItems(items); replErr != nil {
			return errs.NewValidationError(replErr)
		}

		if updErr := cartRepo.Update(ctx, c); updErr != nil {
			return updErr
		}

		if updErr := orderRepo.Update(ctx, o); updErr != nil {
			return updErr
		}

		return errs.FromContext(uow.Commit(ctx))
	})
}
