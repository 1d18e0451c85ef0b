package cmd

import (
	httpin "orderservice/internal/adapters/in/http"
	"orderservice/internal/adapters/out/postgres"
	"orderservice/internal/adapters/out/postgres/orderrepo"
	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/application/usecases/queries"
	"orderservice/internal/core/ports"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	retry      commands.RetryPolicy
}

// NewCompositionRoot wires handlers over gormDB. publisher may be nil, in which
// case committed events stay in the outbox until a relay sends them.
func NewCompositionRoot(config Config, gormDB *gorm.DB, publisher ports.EventPublisher, logger *zap.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, config.OutboxRelayBatchSize, logger),
		retry: commands.RetryPolicy{
			MaxRetries:      config.ConflictRetries,
			InitialInterval: config.ConflictRetryInterval,
		},
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderReader() ports.OrderReader {
	return orderrepo.NewGormOrderRepository(c.gormDB, nil)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.uoWFactory(), c.retry)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory(), c.retry)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.retry)
}

func (c *CompositionRoot) CreatePayOrderCommandHandler() commands.PayOrderCommandHandler {
	return commands.NewPayOrderCommandHandler(c.orderUoWFactory(), c.retry)
}

func (c *CompositionRoot) CreateShipOrderCommandHandler() commands.ShipOrderCommandHandler {
	return commands.NewShipOrderCommandHandler(c.orderUoWFactory(), c.retry)
}

func (c *CompositionRoot) CreateAddOrderItemCommandHandler() commands.AddOrderItemCommandHandler {
	return commands.NewAddOrderItemCommandHandler(c.orderUoWFactory(), c.retry)
}

func (c *CompositionRoot) CreateRemoveOrderItemCommandHandler() commands.RemoveOrderItemCommandHandler {
	return commands.NewRemoveOrderItemCommandHandler(c.orderUoWFactory(), c.retry)
}

func (c *CompositionRoot) CreateSetShippingAddressCommandHandler() commands.SetShippingAddressCommandHandler {
	return commands.NewSetShippingAddressCommandHandler(c.orderUoWFactory(), c.retry)
}

func (c *CompositionRoot) CreateGetOrderByIDQueryHandler() queries.GetOrderByIDQueryHandler {
	return queries.NewGetOrderByIDQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetOrdersByUserQueryHandler() queries.GetOrdersByUserQueryHandler {
	return queries.NewGetOrdersByUserQueryHandler(c.orderReader(), c.config.UserOrdersPageSize)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.orderReader())
}

// HTTPHandlers bundles every use case the REST API exposes.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		UpdateOrder:        c.CreateUpdateOrderCommandHandler(),
		DeleteOrder:        c.CreateDeleteOrderCommandHandler(),
		CancelOrder:        c.CreateCancelOrderCommandHandler(),
		PayOrder:           c.CreatePayOrderCommandHandler(),
		ShipOrder:          c.CreateShipOrderCommandHandler(),
		AddOrderItem:       c.CreateAddOrderItemCommandHandler(),
		RemoveOrderItem:    c.CreateRemoveOrderItemCommandHandler(),
		SetShippingAddress: c.CreateSetShippingAddressCommandHandler(),
		GetOrderByID:       c.CreateGetOrderByIDQueryHandler(),
		GetOrdersByStatus:  c.CreateGetOrdersByStatusQueryHandler(),
		GetOrdersByUser:    c.CreateGetOrdersByUserQueryHandler(),
		GetAllOrders:       c.CreateGetAllOrdersQueryHandler(),
	}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
