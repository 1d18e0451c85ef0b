// Package postgres provides the GORM based Unit of Work.
//
// A unit of work spans one business transaction. Repositories obtained from it
// run inside its transaction and report every aggregate they write, together
// with the domain events that aggregate raised. On Commit the events are stored
// in the outbox table within the same transaction; once the transaction is
// committed they are handed to the EventPublisher and marked as sent. When they
// all go out, up to relayBatch older pending messages are republished as well,
// so an event whose publication failed earlier is retried by the next commit.
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, 100, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Update(ctx, o, events...); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// A UnitOfWork is not safe for concurrent use. Create one per operation.
package postgres

import (
	"context"
	"time"

	"orderservice/internal/adapters/out/postgres/cartrepo"
	"orderservice/internal/adapters/out/postgres/orderrepo"
	"orderservice/internal/adapters/out/postgres/outboxrepo"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
	"orderservice/internal/pkg/errs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// publishTimeout bounds the post-commit publication, which runs detached from
// the caller's context.
const publishTimeout = 10 * time.Second

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
	Events    []order.DomainEvent
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db         *gorm.DB
	publisher  ports.EventPublisher
	relayBatch int
	logger     *zap.Logger
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// publisher may be nil, in which case events stay in the outbox until relayed.
// relayBatch limits the backlog republished after a commit; zero turns that off.
func NewGormUnitOfWorkFactory(
	db *gorm.DB,
	publisher ports.EventPublisher,
	relayBatch int,
	logger *zap.Logger,
) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormUnitOfWorkFactory{
		db:         db,
		publisher:  publisher,
		relayBatch: relayBatch,
		logger:     logger.With(zap.String("component", "unit_of_work")),
	}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		relayBatch:        f.relayBatch,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the events written in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.EventPublisher
	relayBatch        int
	logger            *zap.Logger
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it again while a transaction is active is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errs.FromContext(tx.Error)
	}

	uow.tx = tx
	return nil
}

// Commit stores the tracked events in the outbox, commits and then publishes them.
// Publication ignores cancellation of ctx once the transaction is committed.
// A publish failure is logged and leaves the event pending; the commit still succeeds.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	stored, err := outboxrepo.NewGormOutboxRepository(uow.tx).Insert(ctx, uow.trackedEvents()...)
	if err != nil {
		_ = uow.Rollback(ctx)
		return err
	}

	err = uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if err != nil {
		return errs.FromContext(err)
	}

	uow.publish(ctx, stored)
	return nil
}

// Rollback discards the transaction and every tracked aggregate.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository runs inside the current transaction if one is active,
// otherwise directly against the database.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// CartRepository runs inside the current transaction if one is active,
// otherwise directly against the database.
func (uow *GormUnitOfWork) CartRepository() ports.CartRepository {
	return cartrepo.NewGormCartRepository(uow.conn())
}

// TrackAggregate registers an aggregate written within this unit of work along
// with the events to store on Commit.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any, events ...order.DomainEvent) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
		Events:    events,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) trackedEvents() []order.DomainEvent {
	var events []order.DomainEvent
	for _, tracked := range uow.trackedAggregates {
		events = append(events, tracked.Events...)
	}
	return events
}

func (uow *GormUnitOfWork) publish(ctx context.Context, events []ports.IntegrationEvent) {
	if uow.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	sent := publishAll(ctx, uow.publisher, uow.logger, events)
	if err := outboxrepo.NewGormOutboxRepository(uow.db).MarkSent(ctx, sent...); err != nil {
		uow.logger.Warn("failed to mark outbox messages as sent", zap.Int("count", len(sent)), zap.Error(err))
		return
	}
	if len(sent) < len(events) || uow.relayBatch <= 0 {
		return
	}

	relayed, err := NewOutboxRelay(uow.db, uow.publisher, uow.logger).PublishPending(ctx, uow.relayBatch)
	if err != nil {
		uow.logger.Warn("failed to relay pending outbox messages", zap.Error(err))
		return
	}
	if relayed > 0 {
		uow.logger.Info("relayed pending outbox messages", zap.Int("count", relayed))
	}
}

// publishAll publishes events in order and returns the IDs of those that went out.
func publishAll(
	ctx context.Context,
	publisher ports.EventPublisher,
	logger *zap.Logger,
	events []ports.IntegrationEvent,
) []kernel.UUID {
	sent := make([]kernel.UUID, 0, len(events))
	for _, event := range events {
		if err := publisher.Publish(ctx, event); err != nil {
			logger.Warn("failed to publish event, left in outbox",
				zap.String("event_id", event.ID.String()),
				zap.String("event_name", event.Name),
				zap.Error(err),
			)
			continue
		}
		sent = append(sent, event.ID)
	}
	return sent
}
