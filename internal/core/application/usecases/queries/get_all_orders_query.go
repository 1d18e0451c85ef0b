package queries

import (
	"errors"
	"fmt"
	"math"
	"time"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

const maxInt = math.MaxInt32

var (
	ErrGetAllOrdersQueryIsNotConstructed = errors.New(
		"GetAllOrdersQuery must be created via NewGetAllOrdersQuery constructor",
	)
)

// GetAllOrdersQuery pages through every order, optionally narrowed by status and
// an inclusive creation date range.
//
// Example:
//
//	paid := "paid"
//	query, err := NewGetAllOrdersQuery(2, 10, &paid, nil, nil)
//	page, err := handler.Handle(ctx, query)
//	fmt.Printf("%d of %d orders\n", len(page.Items), page.TotalCount)
type GetAllOrdersQuery struct {
	page     int
	pageSize int
	filter   ports.OrderFilter

	guard guard.ConstructorGuard
}

// NewGetAllOrdersQuery validates paging and the filter. A pageSize of 0 means
// ports.DefaultPageSize; status is matched case-insensitively.
func NewGetAllOrdersQuery(page, pageSize int, status *string, from, to *time.Time) (GetAllOrdersQuery, error) {
	q := GetAllOrdersQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		q.setPage(page),
		q.setPageSize(pageSize),
		q.setStatus(status),
		q.setRange(from, to),
	); err != nil {
		return GetAllOrdersQuery{}, errs.NewValidationError(err)
	}

	return q, nil
}

func (q GetAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllOrdersQueryIsNotConstructed)
}

func (q GetAllOrdersQuery) PageRequest() ports.PageRequest {
	return ports.PageRequest{Page: q.page, PageSize: q.pageSize}
}

func (q GetAllOrdersQuery) Filter() ports.OrderFilter {
	return q.filter
}

func (q *GetAllOrdersQuery) setPage(page int) error {
	if page < 1 {
		return errs.NewValueIsOutOfRangeError("page", page, 1, maxInt)
	}
	q.page = page
	return nil
}

func (q *GetAllOrdersQuery) setPageSize(size int) error {
	if size == 0 {
		size = ports.DefaultPageSize
	}
	if size < 1 || size > ports.MaxPageSize {
		return errs.NewValueIsOutOfRangeError("pageSize", size, 1, ports.MaxPageSize)
	}
	q.pageSize = size
	return nil
}

func (q *GetAllOrdersQuery) setStatus(status *string) error {
	if status == nil || *status == "" {
		return nil
	}
	parsed, err := order.ParseStatus(*status)
	if err != nil {
		return err
	}
	q.filter.Status = &parsed
	return nil
}

func (q *GetAllOrdersQuery) setRange(from, to *time.Time) error {
	if from != nil && to != nil && from.After(*to) {
		return errs.NewValueIsInvalidErrorWithCause("from",
			fmt.Errorf("%s is after %s", from.Format(time.RFC3339), to.Format(time.RFC3339)))
	}
	if from != nil {
		f := from.UTC()
		q.filter.From = &f
	}
	if to != nil {
		t := to.UTC()
		q.filter.To = &t
	}
	return nil
}
