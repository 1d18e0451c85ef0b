package commands

import (
	"context"
	"errors"

	"orderservice/internal/core/application/readmodel"
	"orderservice/internal/core/domain/model/cart"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"
)

// CreateOrderCommandHandler creates the cart, then a Pending order that references it,
// in one transaction.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the stored order with its cart.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (readmodel.Order, error) {
	if err := cmd.Validate(); err != nil {
		return readmodel.Order{}, err
	}

	name, err := order.NewName(cmd.OrderName())
	if err != nil {
		return readmodel.Order{}, err
	}

	newCart, err := buildCart(kernel.NewUUID(), cmd.CartItems())
	if err != nil {
		return readmodel.Order{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return readmodel.Order{}, errs.FromContext(err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if key := cmd.RequestKey(); key != "" {
		existing, getErr := orderRepo.GetByRequestKey(ctx, cmd.MerchantID(), key)
		switch {
		case getErr == nil:
			return readmodel.Order{}, order.ErrDuplicateOrder.WithMessagef(
				"merchant %s already created order %s for request %q", cmd.MerchantID(), existing.ID(), key)
		case !errors.Is(getErr, order.ErrOrderNotFound):
			return readmodel.Order{}, getErr
		}
	}

	storedCart, err := uow.CartRepository().Create(ctx, newCart)
	if err != nil {
		return readmodel.Order{}, err
	}

	o, err := order.NewOrder(
		kernel.NewUUID(),
		name,
		cmd.CustomerID(),
		cmd.MerchantID(),
		storedCart.ID(),
		cmd.RequestKey(),
	)
	if err != nil {
		return readmodel.Order{}, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return readmodel.Order{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return readmodel.Order{}, errs.FromContext(err)
	}

	return readmodel.FromOrder(o, storedCart), nil
}

func buildCart(id kernel.UUID, inputs []CartItemInput) (*cart.Cart, error) {
	items, err := buildCartItems(inputs)
	if err != nil {
		return nil, err
	}
	c, err := cart.NewCart(id, items)
	if err != nil {
		return nil, errs.NewValidationError(err)
	}
	return c, nil
}

func buildCartItems(inputs []CartItemInput) ([]cart.Item, error) {
	items := make([]cart.Item, 0, len(inputs))
	var errList []error
	for _, in := range inputs {
		item, err := cart.NewItem(kernel.NewUUID(), in.Name, in.Quantity, in.Price)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, errs.NewValidationError(err)
	}
	return items, nil
}
