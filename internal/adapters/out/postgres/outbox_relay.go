package postgres

import (
	"context"

	"orderservice/internal/adapters/out/postgres/outboxrepo"
	"orderservice/internal/core/ports"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OutboxRelay republishes outbox messages whose publication failed after commit.
type OutboxRelay struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *zap.Logger
}

func NewOutboxRelay(db *gorm.DB, publisher ports.EventPublisher, logger *zap.Logger) *OutboxRelay {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OutboxRelay{
		db:        db,
		publisher: publisher,
		logger:    logger.With(zap.String("component", "outbox_relay")),
	}
}

// PublishPending sends up to limit pending messages and returns how many went out.
func (r *OutboxRelay) PublishPending(ctx context.Context, limit int) (int, error) {
	repo := outboxrepo.NewGormOutboxRepository(r.db)

	pending, err := repo.FetchPending(ctx, limit)
	if err != nil {
		return 0, err
	}

	sent := publishAll(ctx, r.publisher, r.logger, pending)
	if err = repo.MarkSent(ctx, sent...); err != nil {
		return 0, err
	}

	return len(sent), nil
}
