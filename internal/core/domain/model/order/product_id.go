package order

import "orderservice/internal/core/domain/model/kernel"

// ProductID references a catalogue product. It is never the nil UUID.
type ProductID struct {
	id kernel.UUID
}

func NewProductID(id kernel.UUID) (ProductID, error) {
	if id.IsNil() {
		return ProductID{}, ErrInvalidProductID
	}
	return ProductID{id: id}, nil
}

func (p ProductID) UUID() kernel.UUID {
	return p.id
}

func (p ProductID) Equal(other ProductID) bool {
	return p.id.IsEqual(other.id)
}

func (p ProductID) String() string {
	return p.id.String()
}
