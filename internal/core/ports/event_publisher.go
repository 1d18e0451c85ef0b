package ports

import (
	"context"
	"time"

	"orderservice/internal/core/domain/model/kernel"
)

// IntegrationEvent is the envelope a stored domain event travels in once committed.
type IntegrationEvent struct {
	ID          kernel.UUID
	Name        string
	AggregateID kernel.UUID
	OccurredAt  time.Time
	Payload     []byte
}

// EventPublisher delivers committed events to other services.
type EventPublisher interface {
	Publish(ctx context.Context, event IntegrationEvent) error
}
