package outboxrepo

import (
	"encoding/json"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"

	"github.com/google/uuid"
)

// MessageDTO is one stored domain event waiting for, or done with, publication.
type MessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name        string     `gorm:"type:varchar(64);not null"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Payload     string     `gorm:"type:text;not null"`
	OccurredAt  time.Time  `gorm:"not null"`
	CreatedAt   time.Time  `gorm:"not null;index"`
	SentAt      *time.Time `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "outbox"
}

func fromDomain(event order.DomainEvent, now time.Time) (MessageDTO, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return MessageDTO{}, err
	}

	return MessageDTO{
		ID:          kernel.NewUUID().Bytes(),
		Name:        event.EventName(),
		AggregateID: event.AggregateID().Bytes(),
		Payload:     string(payload),
		OccurredAt:  event.OccurredAt().UTC(),
		CreatedAt:   now,
	}, nil
}

func toIntegrationEvent(dto MessageDTO) (ports.IntegrationEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.IntegrationEvent{}, err
	}
	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return ports.IntegrationEvent{}, err
	}

	return ports.IntegrationEvent{
		ID:          id,
		Name:        dto.Name,
		AggregateID: aggregateID,
		OccurredAt:  dto.OccurredAt,
		Payload:     []byte(dto.Payload),
	}, nil
}
