package kernel

import (
	"errors"
	"time"

	"orderservice/internal/pkg/errs"
)

// Entity is the identity and audit part of an aggregate. Aggregates embed it by
// value, which promotes ID and CreatedAt onto them.
type Entity struct {
	id        UUID
	createdAt time.Time
}

// NewEntity validates the identifier and normalises the creation time to UTC.
func NewEntity(id UUID, createdAt time.Time) (Entity, error) {
	var createdAtErr error
	if createdAt.IsZero() {
		createdAtErr = errs.NewValueIsRequiredError("createdAt")
	}
	if err := errors.Join(id.Validate(), createdAtErr); err != nil {
		return Entity{}, err
	}

	return Entity{id: id, createdAt: createdAt.UTC()}, nil
}

func (e Entity) ID() UUID {
	return e.id
}

func (e Entity) CreatedAt() time.Time {
	return e.createdAt
}
