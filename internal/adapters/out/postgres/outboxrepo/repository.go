package outboxrepo

import (
	"context"
	"time"

	"orderservice/internal/adapters/out/postgres/dberrors"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOutboxRepository stores domain events next to the aggregates that raised them.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Insert stores events in the order given and returns them as integration events.
func (r *GormOutboxRepository) Insert(ctx context.Context, events ...order.DomainEvent) ([]ports.IntegrationEvent, error) {
	if len(events) == 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	dtos := make([]MessageDTO, 0, len(events))
	for _, event := range events {
		dto, err := fromDomain(event, now)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, dto)
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return nil, dberrors.Translate(err)
	}

	return toIntegrationEvents(dtos)
}

// MarkSent stamps the given messages as published.
func (r *GormOutboxRepository) MarkSent(ctx context.Context, ids ...kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	err := r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id IN ? AND sent_at IS NULL", raw).
		Update("sent_at", time.Now().UTC()).Error
	return dberrors.Translate(err)
}

// FetchPending returns up to limit unpublished messages, oldest first.
func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.IntegrationEvent, error) {
	var dtos []MessageDTO
	if err := r.db.WithContext(ctx).
		Where("sent_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, dberrors.Translate(err)
	}

	return toIntegrationEvents(dtos)
}

func toIntegrationEvents(dtos []MessageDTO) ([]ports.IntegrationEvent, error) {
	events := make([]ports.IntegrationEvent, 0, len(dtos))
	for _, dto := range dtos {
		event, err := toIntegrationEvent(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}
