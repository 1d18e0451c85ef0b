package queries

import (
	"context"

	"orderservice/internal/core/application/readmodel"
	"orderservice/internal/core/ports"
	"orderservice/internal/pkg/errs"
)

// GetOrderByIDQueryHandler reads a single order and its cart from the read side of the store.
type GetOrderByIDQueryHandler struct {
	reader ports.OrderReader
}

func NewGetOrderByIDQueryHandler(reader ports.OrderReader) GetOrderByIDQueryHandler {
	return GetOrderByIDQueryHandler{reader: reader}
}

// Handle returns order.ErrOrderNotFound when the order does not exist.
func (h GetOrderByIDQueryHandler) Handle(ctx context.Context, query GetOrderByIDQuery) (readmodel.Order, error) {
	if err := query.Validate(); err != nil {
		return readmodel.Order{}, err
	}

	found, err := h.reader.GetWithCart(ctx, query.OrderID())
	if err != nil {
		return readmodel.Order{}, errs.FromContext(err)
	}

	return readmodel.FromOrder(found.Order, found.Cart), nil
}
