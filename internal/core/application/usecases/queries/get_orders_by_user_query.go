package queries

import (
	"errors"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var (
	ErrGetOrdersByUserQueryIsNotConstructed = errors.New(
		"GetOrdersByUserQuery must be created via NewGetOrdersByUserQuery constructor",
	)
)

// GetOrdersByUserQuery selects one page of a customer's orders. The page size is
// fixed by the handler.
type GetOrdersByUserQuery struct {
	customerID kernel.UUID
	page       int

	guard guard.ConstructorGuard
}

// NewGetOrdersByUserQuery takes a 1-based page number.
func NewGetOrdersByUserQuery(customerID kernel.UUID, page int) (GetOrdersByUserQuery, error) {
	var errList []error
	if customerID.IsNil() {
		errList = append(errList, errs.NewValueIsRequiredError("userId"))
	}
	if page < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("page", page, 1, maxInt))
	}
	if err := errors.Join(errList...); err != nil {
		return GetOrdersByUserQuery{}, errs.NewValidationError(err)
	}

	return GetOrdersByUserQuery{customerID: customerID, page: page, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrdersByUserQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByUserQueryIsNotConstructed)
}

func (q GetOrdersByUserQuery) CustomerID() kernel.UUID {
	return q.customerID
}

func (q GetOrdersByUserQuery) Page() int {
	return q.page
}
