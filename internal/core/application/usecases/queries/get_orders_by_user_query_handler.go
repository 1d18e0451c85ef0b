package queries

import (
	"context"

	"orderservice/internal/core/application/readmodel"
	"orderservice/internal/core/ports"
	"orderservice/internal/pkg/errs"
)

type GetOrdersByUserQueryHandler struct {
	reader   ports.OrderReader
	pageSize int
}

// NewGetOrdersByUserQueryHandler uses ports.DefaultPageSize when pageSize is not positive.
func NewGetOrdersByUserQueryHandler(reader ports.OrderReader, pageSize int) GetOrdersByUserQueryHandler {
	if pageSize <= 0 {
		pageSize = ports.DefaultPageSize
	}
	return GetOrdersByUserQueryHandler{reader: reader, pageSize: pageSize}
}

func (h GetOrdersByUserQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByUserQuery,
) (readmodel.Page[readmodel.Order], error) {
	if err := query.Validate(); err != nil {
		return readmodel.Page[readmodel.Order]{}, err
	}

	page := ports.PageRequest{Page: query.Page(), PageSize: h.pageSize}
	found, err := h.reader.GetByCustomer(ctx, query.CustomerID(), page)
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
