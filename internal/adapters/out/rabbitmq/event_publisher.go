// Package rabbitmq publishes committed order events to a topic exchange.
package rabbitmq

import (
	"context"
	"errors"

	"orderservice/internal/core/ports"

	"github.com/streadway/amqp"
)

var ErrExchangeRequired = errors.New("exchange name is required")

// Channel is the part of the broker client the publisher needs.
type Channel interface {
	Publish(ctx context.Context, exchange, routingKey string, msg amqp.Publishing) error
}

var _ ports.EventPublisher = (*EventPublisher)(nil)

// EventPublisher sends each event with its name as the routing key.
type EventPublisher struct {
	channel  Channel
	exchange string
}

func NewEventPublisher(channel Channel, exchange string) (*EventPublisher, error) {
	if exchange == "" {
		return nil, ErrExchangeRequired
	}
	return &EventPublisher{channel: channel, exchange: exchange}, nil
}

func (p *EventPublisher) Publish(ctx context.Context, event ports.IntegrationEvent) error {
	return p.channel.Publish(ctx, p.exchange, event.Name, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID.String(),
		Type:         event.Name,
		Timestamp:    event.OccurredAt,
		Headers:      amqp.Table{"aggregateId": event.AggregateID.String()},
		Body:         event.Payload,
	})
}
