package queries_test

import (
	"context"
	"testing"

	"orderservice/internal/core/application/usecases/queries"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
	"orderservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrderByIDQueryHandler_Handle(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	reader := &MockOrderReader{}
	found := newOrderWithCart(t, kernel.NewUUID())
	reader.On("GetWithCart", ctx, found.Order.ID()).Return(found, nil).Once()

	query, err := queries.NewGetOrderByIDQuery(found.Order.ID())
	require.NoError(t, err)

	view, err := queries.NewGetOrderByIDQueryHandler(reader).Handle(ctx, query)
	require.NoError(t, err)

	assert.Equal(t, found.Order.ID().Bytes(), view.ID)
	assert.Equal(t, "QW123", view.OrderName)
	require.NotNil(t, view.Cart)
	assert.Len(t, view.Cart.CartItems, 1)
	reader.AssertExpectations(t)
}

func TestGetOrderByIDQueryHandler_NotFound(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	reader := &MockOrderReader{}
	id := kernel.NewUUID()
	reader.On("GetWithCart", ctx, id).Return(ports.OrderWithCart{}, order.ErrOrderNotFound).Once()

	query, err := queries.NewGetOrderByIDQuery(id)
	require.NoError(t, err)

	_, err = queries.NewGetOrderByIDQueryHandler(reader).Handle(ctx, query)
	require.ErrorIs(t, err, order.ErrOrderNotFound)
	assert.Equal(t, "ORDER_NOT_FOUND", errs.CodeOf(err))
}

func TestGetOrderByIDQueryHandler_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	reader := &MockOrderReader{}
	id := kernel.NewUUID()
	reader.On("GetWithCart", ctx, id).Return(ports.OrderWithCart{}, context.DeadlineExceeded).Once()

	query, err := queries.NewGetOrderByIDQuery(id)
	require.NoError(t, err)

	_, err = queries.NewGetOrderByIDQueryHandler(reader).Handle(ctx, query)
	require.ErrorIs(t, err, errs.ErrCancelled)
	assert.Equal(t, errs.CodeCancelled, errs.CodeOf(err))
}

func TestGetOrderByIDQuery_ZeroValueIsInvalid(t *testing.T) {
	t.Parallel()

	var query queries.GetOrderByIDQuery
	require.ErrorIs(t, query.Validate(), queries.ErrGetOrderByIDQueryIsNotConstructed)

	_, err := queries.NewGetOrderByIDQuery(kernel.UUID{})
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}
