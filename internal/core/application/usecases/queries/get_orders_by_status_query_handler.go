package queries

import (
	"context"

	"orderservice/internal/core/application/readmodel"
	"orderservice/internal/core/ports"
	"orderservice/internal/pkg/errs"
)

type GetOrdersByStatusQueryHandler struct {
	reader ports.OrderReader
}

func NewGetOrdersByStatusQueryHandler(reader ports.OrderReader) GetOrdersByStatusQueryHandler {
	return GetOrdersByStatusQueryHandler{reader: reader}
}

// Handle returns an empty, non-nil slice when no order matches.
func (h GetOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByStatusQuery,
) ([]readmodel.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.reader.GetByStatus(ctx, query.Status())
	if err != nil {
		return nil, errs.FromContext(err)
	}

	return toReadModels(found), nil
}

func toReadModels(found []ports.OrderWithCart) []readmodel.Order {
	views := make([]readmodel.Order, 0, len(found))
	for _, item := range found {
		views = append(views, readmodel.FromOrder(item.Order, item.Cart))
	}
	return views
}
