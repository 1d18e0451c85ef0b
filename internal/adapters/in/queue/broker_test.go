package queue

import (
	"context"
	"sync"

	"orderservice/internal/core/application/readmodel"
	"orderservice/internal/core/application/usecases/commands"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/mock"
)

// fakeBroker hands out deliveries and puts nacked-with-requeue deliveries back
// on the queue, the way RabbitMQ does.
type fakeBroker struct {
	mu         sync.Mutex
	deliveries chan amqp.Delivery
	pending    map[uint64]amqp.Delivery
	nextTag    uint64

	acked       []string
	nacked      []string
	redelivered int
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{
		deliveries: make(chan amqp.Delivery, 16),
		pending:    make(map[uint64]amqp.Delivery),
	}
}

func (b *fakeBroker) Consume(_, _ string) (<-chan amqp.Delivery, error) {
	return b.deliveries, nil
}

func (b *fakeBroker) publish(messageID string, body []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enqueue(amqp.Delivery{MessageId: messageID, Body: body})
}

func (b *fakeBroker) enqueue(d amqp.Delivery) {
	b.nextTag++
	d.Acknowledger = b
	d.DeliveryTag = b.nextTag
	b.pending[d.DeliveryTag] = d
	b.deliveries <- d
}

func (b *fakeBroker) Ack(tag uint64, _ bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.acked = append(b.acked, b.pending[tag].MessageId)
	delete(b.pending, tag)
	return nil
}

func (b *fakeBroker) Nack(tag uint64, _ bool, requeue bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	d := b.pending[tag]
	delete(b.pending, tag)
	b.nacked = append(b.nacked, d.MessageId)
	if requeue {
		d.Redelivered = true
		b.redelivered++
		b.enqueue(d)
	}
	return nil
}

func (b *fakeBroker) Reject(tag uint64, requeue bool) error {
	return b.Nack(tag, false, requeue)
}

func (b *fakeBroker) snapshot() (acked, nacked []string, redelivered int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.acked...), append([]string(nil), b.nacked...), b.redelivered
}

type MockCreateOrderHandler struct {
	mock.Mock
}

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (readmodel.Order, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(readmodel.Order), args.Error(1)
}
