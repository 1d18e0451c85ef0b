// Package rabbitmq wraps a single AMQP connection and channel.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/streadway/amqp"
)

var ErrURLRequired = errors.New("rabbitmq url is required")

type Config struct {
	URL      string
	Prefetch int
}

// Client owns one connection and one channel. Publishing is serialised
// because frames of concurrent publishes on a channel may interleave.
type Client struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	prefetch int

	mu sync.Mutex
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, ErrURLRequired
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	prefetch := cfg.Prefetch
	if prefetch <= 0 {
		prefetch = 1
	}

	return &Client{conn: conn, channel: ch, prefetch: prefetch}, nil
}

// DeclareQueue declares a durable queue.
func (c *Client) DeclareQueue(name string) error {
	_, err := c.channel.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %q: %w", name, err)
	}
	return nil
}

// DeclareExchange declares a durable topic exchange.
func (c *Client) DeclareExchange(name string) error {
	err := c.channel.ExchangeDeclare(
		name,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange %q: %w", name, err)
	}
	return nil
}

// Consume declares the queue and starts delivering from it with manual
// acknowledgement and the configured prefetch.
func (c *Client) Consume(queue, consumer string) (<-chan amqp.Delivery, error) {
	if err := c.DeclareQueue(queue); err != nil {
		return nil, err
	}
	if err := c.channel.Qos(c.prefetch, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set qos: %w", err)
	}

	msgs, err := c.channel.Consume(
		queue,
		consumer,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register a consumer: %w", err)
	}
	return msgs, nil
}

func (c *Client) Publish(ctx context.Context, exchange, routingKey string, msg amqp.Publishing) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.channel.Publish(exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish to %q: %w", exchange, err)
	}
	return nil
}

func (c *Client) Close() error {
	var errList []error
	if c.channel != nil {
		errList = append(errList, c.channel.Close())
	}
	if c.conn != nil {
		errList = append(errList, c.conn.Close())
	}
	return errors.Join(errList...)
}
