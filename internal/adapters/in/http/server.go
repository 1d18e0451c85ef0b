// Package http exposes the order commands and queries over a JSON REST API.
package http

import (
	"context"
	"errors"
	"net/http"

	"orderservice/internal/adapters/in/contract"
	"orderservice/internal/core/application/readmodel"
	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/application/usecases/queries"
	"orderservice/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type (
	// CommandHandler runs a command that returns nothing but an error.
	CommandHandler[C any] interface {
		Handle(ctx context.Context, cmd C) error
	}

	// ResultHandler runs a command or query that produces a view.
	ResultHandler[Q, R any] interface {
		Handle(ctx context.Context, query Q) (R, error)
	}
)

// Handlers are the use cases the API dispatches to.
type Handlers struct {
	// Command handlers
	CreateOrder        ResultHandler[commands.CreateOrderCommand, readmodel.Order]
	UpdateOrder        CommandHandler[commands.UpdateOrderCommand]
	DeleteOrder        CommandHandler[commands.DeleteOrderCommand]
	CancelOrder        CommandHandler[commands.CancelOrderCommand]
	PayOrder           CommandHandler[commands.PayOrderCommand]
	ShipOrder          CommandHandler[commands.ShipOrderCommand]
	AddOrderItem       CommandHandler[commands.AddOrderItemCommand]
	RemoveOrderItem    CommandHandler[commands.RemoveOrderItemCommand]
	SetShippingAddress CommandHandler[commands.SetShippingAddressCommand]

	// Query handlers
	GetOrderByID      ResultHandler[queries.GetOrderByIDQuery, readmodel.Order]
	GetOrdersByStatus ResultHandler[queries.GetOrdersByStatusQuery, []readmodel.Order]
	GetOrdersByUser   ResultHandler[queries.GetOrdersByUserQuery, readmodel.Page[readmodel.Order]]
	GetAllOrders      ResultHandler[queries.GetAllOrdersQuery, readmodel.Page[readmodel.Order]]
}

// Server routes HTTP requests to the order use cases.
type Server struct {
	handlers  Handlers
	validator *contract.Validator
	metrics   *metrics.ServerMetrics
	logger    *zap.Logger

	echo *echo.Echo
}

// NewServer wires the routes. serverMetrics may be nil; /metrics is served
// from gatherer when it is set.
func NewServer(
	handlers Handlers,
	logger *zap.Logger,
	serverMetrics *metrics.ServerMetrics,
	gatherer prometheus.Gatherer,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		handlers:  handlers,
		validator: contract.NewValidator(),
		metrics:   serverMetrics,
		logger:    logger.With(zap.String("component", "http")),
		echo:      echo.New(),
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.Validator = s.validator
	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.Recover())
	e.Use(s.observe)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler(gatherer)))
	}

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.GetOrders)
	v1.GET("/orders/status/:status", s.GetOrdersByStatus)
	v1.GET("/orders/:id", s.GetOrder)
	v1.PUT("/orders/:id", s.UpdateOrder)
	v1.DELETE("/orders/:id", s.DeleteOrder)
	v1.POST("/orders/:id/cancel", s.CancelOrder)
	v1.POST("/orders/:id/pay", s.PayOrder)
	v1.POST("/orders/:id/ship", s.ShipOrder)
	v1.POST("/orders/:id/items", s.AddOrderItem)
	v1.DELETE("/orders/:id/items/:productId", s.RemoveOrderItem)
	v1.PUT("/orders/:id/shipping-address", s.SetShippingAddress)
	v1.GET("/users/:userId/orders", s.GetOrdersByUser)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks serving addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("starting server", zap.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.echo.Shutdown(ctx)
}
