package queries

import (
	"context"

	"orderservice/internal/core/application/readmodel"
	"orderservice/internal/core/ports"
	"orderservice/internal/pkg/errs"
)

// GetAllOrdersQueryHandler returns one filtered page of orders, newest first,
// with the total number of matching orders.
type GetAllOrdersQueryHandler struct {
	reader ports.OrderReader
}

func NewGetAllOrdersQueryHandler(reader ports.OrderReader) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{reader: reader}
}

func (h GetAllOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAllOrdersQuery,
) (readmodel.Page[readmodel.Order], error) {
	if err := query.Validate(); err != nil {
		return readmodel.Page[readmodel.Order]{}, err
	}

	page := query.PageRequest()
	found, err := h.reader.GetAll(ctx, query.Filter(), page)
	if err != nil {
		return readmodel.Page[readmodel.Order]{}, errs.FromContext(err)
	}

	return readmodel.Page[readmodel.Order]{
		Items:      toReadModels(found.Items),
		TotalCount: found.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
	}, nil
}
