package kernel

import (
	"strconv"

	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var (
	ErrInvalidQuantity = errs.New(errs.KindValidation, "INVALID_QUANTITY", "quantity must be greater than zero")

	ErrQuantityIsNotConstructed = errs.NewValueIsRequiredError("quantity must be created via NewQuantity")
)

// Quantity is a strictly positive item count no larger than MaxQuantity.
type Quantity struct { //nolint:recvcheck //using for validation
	value int
	guard guard.ConstructorGuard
}

func NewQuantity(value int) (Quantity, error) {
	if value <= 0 {
		return Quantity{}, ErrInvalidQuantity.WithMessagef("quantity must be greater than zero, got %d", value)
	}
	if value > MaxQuantity {
		return Quantity{}, ErrInvalidQuantity.WithMessagef("quantity must not exceed %d, got %d", MaxQuantity, value)
	}
	return Quantity{value: value, guard: guard.NewConstructorGuard()}, nil
}

func (q Quantity) Validate() error {
	return q.guard.Validate(ErrQuantityIsNotConstructed)
}

func (q Quantity) Value() int {
	return q.value
}

// Increase returns a new quantity grown by delta. The result must stay in range.
func (q Quantity) Increase(delta int) (Quantity, error) {
	return NewQuantity(q.value + delta)
}

// Update returns a replacement quantity.
func (q Quantity) Update(value int) (Quantity, error) {
	return NewQuantity(value)
}

func (q Quantity) Equal(other Quantity) bool {
	return q.value == other.value
}

func (q Quantity) String() string {
	return strconv.Itoa(q.value)
}
