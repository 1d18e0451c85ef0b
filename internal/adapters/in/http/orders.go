package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"orderservice/internal/adapters/in/contract"
	"orderservice/internal/core/application/readmodel"
	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/application/usecases/queries"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const idempotencyKeyHeader = "Idempotency-Key"

// PageResponse is a listing page together with its page count.
type PageResponse struct {
	Items      []readmodel.Order `json:"items"`
	TotalCount int64             `json:"totalCount"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

func toPageResponse(p readmodel.Page[readmodel.Order]) PageResponse {
	items := p.Items
	if items == nil {
		items = []readmodel.Order{}
	}
	return PageResponse{
		Items:      items,
		TotalCount: p.TotalCount,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages(),
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req contract.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return contract.ErrMalformedBody.WithCause(err)
	}

	cmd, err := req.ToCommand(s.validator, c.Request().Header.Get(idempotencyKeyHeader))
	if err != nil {
		return err
	}

	view, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/api/v1/orders/"+view.ID.String())
	return c.JSON(http.StatusCreated, view)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderByIDQuery(orderID)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetOrderByID.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// GetOrders handles GET /api/v1/orders?page=&pageSize=&status=&from=&to=.
func (s *Server) GetOrders(c echo.Context) error {
	page, pageErr := intParam(c, "page", 1)
	pageSize, sizeErr := intParam(c, "pageSize", 0)
	from, fromErr := timeParam(c, "from", false)
	to, toErr := timeParam(c, "to", true)
	if err := joinValidation(pageErr, sizeErr, fromErr, toErr); err != nil {
		return err
	}

	var status *string
	if raw := strings.TrimSpace(c.QueryParam("status")); raw != "" {
		status = &raw
	}

	query, err := queries.NewGetAllOrdersQuery(page, pageSize, status, from, to)
	if err != nil {
		return err
	}

	result, err := s.handlers.GetAllOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(result))
}

// GetOrdersByStatus handles GET /api/v1/orders/status/:status.
func (s *Server) GetOrdersByStatus(c echo.Context) error {
	query, err := queries.NewGetOrdersByStatusQuery(c.Param("status"))
	if err != nil {
		return err
	}

	views, err := s.handlers.GetOrdersByStatus.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// GetOrdersByUser handles GET /api/v1/users/:userId/orders?page=.
func (s *Server) GetOrdersByUser(c echo.Context) error {
	userID, idErr := pathID(c, "userId")
	page, pageErr := intParam(c, "page", 1)
	if err := joinValidation(idErr, pageErr); err != nil {
		return err
	}

	query, err := queries.NewGetOrdersByUserQuery(userID, page)
	if err != nil {
		return err
	}

	result, err := s.handlers.GetOrdersByUser.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(result))
}

// UpdateOrder handles PUT /api/v1/orders/:id.
func (s *Server) UpdateOrder(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req contract.UpdateOrderRequest
	if err = c.Bind(&req); err != nil {
		return contract.ErrMalformedBody.WithCause(err)
	}

	cmd, err := req.ToCommand(s.validator, orderID)
	if err != nil {
		return err
	}

	if err = s.handlers.UpdateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/v1/orders/:id.
func (s *Server) DeleteOrder(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err = s.handlers.DeleteOrder.Handle(c.Request().Context(), commands.NewDeleteOrderCommand(orderID)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	return transition(c, commands.NewCancelOrderCommand, s.handlers.CancelOrder)
}

// PayOrder handles POST /api/v1/orders/:id/pay.
func (s *Server) PayOrder(c echo.Context) error {
	return transition(c, commands.NewPayOrderCommand, s.handlers.PayOrder)
}

// ShipOrder handles POST /api/v1/orders/:id/ship.
func (s *Server) ShipOrder(c echo.Context) error {
	return transition(c, commands.NewShipOrderCommand, s.handlers.ShipOrder)
}

// AddOrderItem handles POST /api/v1/orders/:id/items.
func (s *Server) AddOrderItem(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req contract.AddItemRequest
	if err = c.Bind(&req); err != nil {
		return contract.ErrMalformedBody.WithCause(err)
	}

	cmd, err := req.ToCommand(s.validator, orderID)
	if err != nil {
		return err
	}

	if err = s.handlers.AddOrderItem.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveOrderItem handles DELETE /api/v1/orders/:id/items/:productId.
func (s *Server) RemoveOrderItem(c echo.Context) error {
	orderID, orderErr := pathID(c, "id")
	productID, productErr := pathID(c, "productId")
	if err := joinValidation(orderErr, productErr); err != nil {
		return err
	}

	cmd, err := commands.NewRemoveOrderItemCommand(orderID, productID)
	if err != nil {
		return err
	}

	if err = s.handlers.RemoveOrderItem.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetShippingAddress handles PUT /api/v1/orders/:id/shipping-address.
func (s *Server) SetShippingAddress(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req contract.ShippingAddressRequest
	if err = c.Bind(&req); err != nil {
		return contract.ErrMalformedBody.WithCause(err)
	}

	cmd, err := req.ToCommand(orderID)
	if err != nil {
		return err
	}

	if err = s.handlers.SetShippingAddress.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// transition runs a command that needs nothing but the order id from the path.
func transition[C any](
	c echo.Context,
	newCommand func(kernel.UUID) (C, error),
	handler CommandHandler[C],
) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := newCommand(orderID)
	if err != nil {
		return err
	}

	if err = handler.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValidationError(errs.NewValueIsInvalidErrorWithCause(name, err))
	}
	return id, nil
}

func intParam(c echo.Context, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValidationError(errs.NewValueIsInvalidErrorWithCause(name, err))
	}
	return v, nil
}

// timeParam accepts RFC 3339 timestamps and plain dates. A plain date used as an
// upper bound covers the whole day.
func timeParam(c echo.Context, name string, upper bool) (*time.Time, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil //nolint:nilnil // an absent bound is not an error
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		if upper {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		return &t, nil
	}
	return nil, errs.NewValidationError(errs.NewValueIsInvalidError(name))
}

// joinValidation merges several validation errors into one carrying all details.
func joinValidation(errList ...error) error {
	var details []errs.Detail
	for _, err := range errList {
		var coded *errs.Error
		switch {
		case err == nil:
		case errors.As(err, &coded) && coded.Kind == errs.KindValidation:
			details = append(details, coded.Details...)
		default:
			return err
		}
	}
	if len(details) == 0 {
		return nil
	}
	return errs.NewValidationError(nil, details...)
}
