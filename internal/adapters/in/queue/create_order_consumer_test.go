package queue

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"orderservice/internal/adapters/out/postgres/dberrors"
	"orderservice/internal/core/application/readmodel"
	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const validMessage = `{
	"orderName": "AB123",
	"customerId": "0b9a4f1e-7c2d-4d5e-9f10-2a3b4c5d6e7f",
	"merchantId": "5f6e7d8c-9b0a-4c1d-8e2f-3a4b5c6d7e8f",
	"cart": {"cartItems": [{"name": "Coffee", "quantity": 2, "price": 3.5}]}
}`

func TestNewCreateOrderConsumer_RequiresQueueName(t *testing.T) {
	consumer, err := NewCreateOrderConsumer("", newFakeBroker(), new(MockCreateOrderHandler), nil, nil)

	require.ErrorIs(t, err, ErrQueueNameRequired)
	assert.Nil(t, consumer)
}

type CreateOrderConsumerSuite struct {
	suite.Suite

	broker  *fakeBroker
	handler *MockCreateOrderHandler
	metrics *metrics.ConsumerMetrics

	cancel context.CancelFunc
	done   chan error
}

func TestCreateOrderConsumerSuite(t *testing.T) {
	suite.Run(t, new(CreateOrderConsumerSuite))
}

func (s *CreateOrderConsumerSuite) SetupTest() {
	s.broker = newFakeBroker()
	s.handler = new(MockCreateOrderHandler)
	s.metrics = metrics.NewConsumerMetrics(prometheus.NewRegistry())

	consumer, err := NewCreateOrderConsumer("orders.create", s.broker, s.handler, nil, s.metrics)
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan error, 1)
	go func() { s.done <- consumer.Run(ctx) }()
}

func (s *CreateOrderConsumerSuite) TearDownTest() {
	s.cancel()
	select {
	case err := <-s.done:
		s.Require().NoError(err)
	case <-time.After(time.Second):
		s.Fail("consumer did not stop")
	}
}

func (s *CreateOrderConsumerSuite) waitForAcks(n int) {
	s.Require().Eventually(func() bool {
		acked, _, _ := s.broker.snapshot()
		return len(acked) >= n
	}, time.Second, 5*time.Millisecond)
}

func (s *CreateOrderConsumerSuite) outcome(name string) float64 {
	return testutil.ToFloat64(s.metrics.Messages.WithLabelValues("orders.create", name))
}

func (s *CreateOrderConsumerSuite) TestSuccessIsAcked() {
	s.handler.On("Handle", mock.Anything, mock.Anything).
		Return(readmodel.Order{ID: uuid.New(), OrderName: "AB123", Status: "Pending"}, nil).Once()

	s.broker.publish("m-1", []byte(validMessage))
	s.waitForAcks(1)

	acked, nacked, _ := s.broker.snapshot()
	s.Equal([]string{"m-1"}, acked)
	s.Empty(nacked)
	s.InDelta(1, s.outcome(metrics.OutcomeProcessed), 0)
	s.handler.AssertExpectations(s.T())
}

func (s *CreateOrderConsumerSuite) TestMalformedMessageIsAckedAndNotRedelivered() {
	s.broker.publish("bad", []byte("{not json"))
	s.waitForAcks(1)

	// Give a wrongly requeued delivery time to come back.
	time.Sleep(20 * time.Millisecond)

	acked, nacked, redelivered := s.broker.snapshot()
	s.Equal([]string{"bad"}, acked)
	s.Empty(nacked)
	s.Zero(redelivered)
	s.InDelta(1, s.outcome(metrics.OutcomeMalformed), 0)
	s.handler.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *CreateOrderConsumerSuite) TestPersistenceFailureIsRequeuedAndRedelivered() {
	s.handler.On("Handle", mock.Anything, mock.Anything).
		Return(readmodel.Order{}, errors.New("connection reset by peer")).Once()
	s.handler.On("Handle", mock.Anything, mock.Anything).
		Return(readmodel.Order{ID: uuid.New()}, nil).Once()

	s.broker.publish("m-2", []byte(validMessage))
	s.waitForAcks(1)

	acked, nacked, redelivered := s.broker.snapshot()
	s.Equal([]string{"m-2"}, nacked)
	s.Equal([]string{"m-2"}, acked)
	s.GreaterOrEqual(redelivered, 1)
	s.InDelta(1, s.outcome(metrics.OutcomeRequeued), 0)
	s.InDelta(1, s.outcome(metrics.OutcomeProcessed), 0)
	s.handler.AssertNumberOfCalls(s.T(), "Handle", 2)
}

func (s *CreateOrderConsumerSuite) TestConflictIsRequeued() {
	s.handler.On("Handle", mock.Anything, mock.Anything).
		Return(readmodel.Order{}, errs.ErrConcurrencyConflict).Once()
	s.handler.On("Handle", mock.Anything, mock.Anything).
		Return(readmodel.Order{ID: uuid.New()}, nil).Once()

	s.broker.publish("m-3", []byte(validMessage))
	s.waitForAcks(1)

	_, nacked, _ := s.broker.snapshot()
	s.Equal([]string{"m-3"}, nacked)
}

func (s *CreateOrderConsumerSuite) TestTerminalFailuresAreAcked() {
	terminal := []error{
		order.ErrDuplicateOrder,
		order.ErrInvalidNameLength,
		errs.NewValidationError(errs.NewValueIsRequiredError("cart")),
	}
	for _, err := range terminal {
		s.handler.On("Handle", mock.Anything, mock.Anything).Return(readmodel.Order{}, err).Once()
	}

	for range terminal {
		s.broker.publish("m", []byte(validMessage))
	}
	s.waitForAcks(len(terminal))

	_, nacked, redelivered := s.broker.snapshot()
	s.Empty(nacked)
	s.Zero(redelivered)
	s.InDelta(float64(len(terminal)), s.outcome(metrics.OutcomeRejected), 0)
}

func (s *CreateOrderConsumerSuite) TestInvalidRequestIsAckedWithoutCallingHandler() {
	s.broker.publish("m-4", []byte(`{"orderName":"AB123","cart":{"cartItems":[]}}`))
	s.waitForAcks(1)

	s.InDelta(1, s.outcome(metrics.OutcomeRejected), 0)
	s.handler.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *CreateOrderConsumerSuite) TestOversizedPayloadIsAckedNotRequeued() {
	oversized := strings.NewReplacer(
		`"name": "Coffee"`, `"name": "`+strings.Repeat("x", 256)+`"`,
		`"quantity": 2`, `"quantity": 2147483648`,
	).Replace(validMessage)

	s.broker.publish("m-6", []byte(oversized))
	s.broker.publish(strings.Repeat("k", 256), []byte(validMessage))
	s.waitForAcks(2)

	_, nacked, redelivered := s.broker.snapshot()
	s.Empty(nacked)
	s.Zero(redelivered)
	s.InDelta(2, s.outcome(metrics.OutcomeRejected), 0)
	s.handler.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *CreateOrderConsumerSuite) TestValueRejectedByStoreIsAcked() {
	rejected := dberrors.ErrDataRejected.WithCause(&pgconn.PgError{Code: "22003"})
	s.handler.On("Handle", mock.Anything, mock.Anything).Return(readmodel.Order{}, rejected).Once()

	s.broker.publish("m-7", []byte(validMessage))
	s.waitForAcks(1)

	_, nacked, redelivered := s.broker.snapshot()
	s.Empty(nacked)
	s.Zero(redelivered)
	s.InDelta(1, s.outcome(metrics.OutcomeRejected), 0)
}

func (s *CreateOrderConsumerSuite) TestRequestKeyFallsBackToMessageID() {
	s.handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return cmd.RequestKey() == "m-5" && cmd.OrderName() == "AB123"
	})).Return(readmodel.Order{ID: uuid.New()}, nil).Once()

	s.broker.publish("m-5", []byte(validMessage))
	s.waitForAcks(1)

	s.handler.AssertExpectations(s.T())
}

func TestCreateOrderConsumer_StopsWhenDeliveriesClose(t *testing.T) {
	broker := newFakeBroker()
	consumer, err := NewCreateOrderConsumer("orders.create", broker, new(MockCreateOrderHandler), nil, nil)
	require.NoError(t, err)

	close(broker.deliveries)

	assert.NoError(t, consumer.Run(context.Background()))
}

type failingSource struct{ err error }

func (f failingSource) Consume(_, _ string) (<-chan amqp.Delivery, error) {
	return nil, f.err
}

func TestCreateOrderConsumer_ConsumeError(t *testing.T) {
	brokerErr := errors.New("channel closed")
	consumer, err := NewCreateOrderConsumer("orders.create", failingSource{err: brokerErr}, new(MockCreateOrderHandler), nil, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, consumer.Run(context.Background()), brokerErr)
}
