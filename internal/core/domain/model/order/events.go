package order

import (
	"time"

	"orderservice/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

const (
	EventOrderItemAdded   = "order.item_added"
	EventOrderItemRemoved = "order.item_removed"
	EventOrderPaid        = "order.paid"
	EventOrderShipped     = "order.shipped"
	EventOrderCancelled   = "order.cancelled"
	EventOrderDeleted     = "order.deleted"
)

// DomainEvent is a fact raised by the Order aggregate.
type DomainEvent interface {
	EventName() string
	AggregateID() kernel.UUID
	OccurredAt() time.Time
}

type OrderItemAdded struct {
	OrderID    kernel.UUID     `json:"orderId"`
	ProductID  kernel.UUID     `json:"productId"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Currency   string          `json:"currency"`
	OccurredOn time.Time       `json:"occurredOn"`
}

func (e OrderItemAdded) EventName() string        { return EventOrderItemAdded }
func (e OrderItemAdded) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderItemAdded) OccurredAt() time.Time    { return e.OccurredOn }

type OrderItemRemoved struct {
	OrderID    kernel.UUID `json:"orderId"`
	ProductID  kernel.UUID `json:"productId"`
	OccurredOn time.Time   `json:"occurredOn"`
}

func (e OrderItemRemoved) EventName() string        { return EventOrderItemRemoved }
func (e OrderItemRemoved) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderItemRemoved) OccurredAt() time.Time    { return e.OccurredOn }

type OrderPaid struct {
	OrderID     kernel.UUID     `json:"orderId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Currency    string          `json:"currency"`
	OccurredOn  time.Time       `json:"occurredOn"`
}

func (e OrderPaid) EventName() string        { return EventOrderPaid }
func (e OrderPaid) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderPaid) OccurredAt() time.Time    { return e.OccurredOn }

type OrderShipped struct {
	OrderID    kernel.UUID `json:"orderId"`
	OccurredOn time.Time   `json:"occurredOn"`
}

func (e OrderShipped) EventName() string        { return EventOrderShipped }
func (e OrderShipped) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderShipped) OccurredAt() time.Time    { return e.OccurredOn }

type OrderCancelled struct {
	OrderID        kernel.UUID `json:"orderId"`
	PreviousStatus string      `json:"previousStatus"`
	OccurredOn     time.Time   `json:"occurredOn"`
}

func (e OrderCancelled) EventName() string        { return EventOrderCancelled }
func (e OrderCancelled) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderCancelled) OccurredAt() time.Time    { return e.OccurredOn }

type OrderDeleted struct {
	OrderID    kernel.UUID `json:"orderId"`
	OccurredOn time.Time   `json:"occurredOn"`
}

func (e OrderDeleted) EventName() string        { return EventOrderDeleted }
func (e OrderDeleted) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderDeleted) OccurredAt() time.Time    { return e.OccurredOn }
