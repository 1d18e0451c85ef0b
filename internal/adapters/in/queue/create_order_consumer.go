// Package queue consumes create-order requests from RabbitMQ.
package queue

import (
	"context"
	"errors"

	"orderservice/internal/adapters/in/contract"
	"orderservice/internal/core/application/readmodel"
	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/metrics"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const consumerTag = "orderservice-create-order"

var ErrQueueNameRequired = errors.New("queue name is required")

// DeliverySource starts a manual-ack consumer on a queue.
type DeliverySource interface {
	Consume(queue, consumer string) (<-chan amqp.Delivery, error)
}

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (readmodel.Order, error)
}

// CreateOrderConsumer turns each delivery into a CreateOrderCommand.
//
// Deliveries that can never succeed (malformed body, validation, domain,
// not found, duplicate) are acked and dropped. Everything else is nacked with
// requeue so the broker redelivers it.
type CreateOrderConsumer struct {
	queue     string
	source    DeliverySource
	handler   CreateOrderHandler
	validator *contract.Validator
	logger    *zap.Logger
	metrics   *metrics.ConsumerMetrics
}

func NewCreateOrderConsumer(
	queueName string,
	source DeliverySource,
	handler CreateOrderHandler,
	logger *zap.Logger,
	m *metrics.ConsumerMetrics,
) (*CreateOrderConsumer, error) {
	if queueName == "" {
		return nil, ErrQueueNameRequired
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CreateOrderConsumer{
		queue:     queueName,
		source:    source,
		handler:   handler,
		validator: contract.NewValidator(),
		logger:    logger.With(zap.String("component", "create_order_consumer"), zap.String("queue", queueName)),
		metrics:   m,
	}, nil
}

// Run processes one delivery at a time until ctx is done or the delivery
// channel is closed.
func (c *CreateOrderConsumer) Run(ctx context.Context) error {
	deliveries, err := c.source.Consume(c.queue, consumerTag)
	if err != nil {
		return err
	}
	c.logger.Info("consumer started")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("consumer stopped")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				c.logger.Warn("delivery channel closed")
				return nil
			}
			c.settle(d, c.process(ctx, d))
		}
	}
}

func (c *CreateOrderConsumer) process(ctx context.Context, d amqp.Delivery) string {
	log := c.logger.With(zap.String("messageId", d.MessageId), zap.Bool("redelivered", d.Redelivered))

	req, err := contract.DecodeCreateOrderRequest(d.Body)
	if err != nil {
		log.Error("dropping malformed message", zap.Error(err))
		return metrics.OutcomeMalformed
	}

	cmd, err := req.ToCommand(c.validator, d.MessageId)
	if err != nil {
		log.Warn("dropping invalid create order request", zap.Error(err))
		return metrics.OutcomeRejected
	}

	view, err := c.handler.Handle(ctx, cmd)
	switch {
	case err == nil:
		log.Info("order created", zap.String("orderId", view.ID.String()))
		return metrics.OutcomeProcessed
	case errs.Retryable(err):
		log.Error("create order failed, requeueing", zap.Error(err))
		return metrics.OutcomeRequeued
	default:
		log.Warn("create order rejected", zap.String("code", errs.CodeOf(err)), zap.Error(err))
		return metrics.OutcomeRejected
	}
}

func (c *CreateOrderConsumer) settle(d amqp.Delivery, outcome string) {
	c.metrics.Observe(c.queue, outcome)

	var err error
	if outcome == metrics.OutcomeRequeued {
		err = d.Nack(false, true)
	} else {
		err = d.Ack(false)
	}
	if err != nil {
		c.logger.Error("failed to settle delivery",
			zap.String("messageId", d.MessageId), zap.String("outcome", outcome), zap.Error(err))
	}
}
