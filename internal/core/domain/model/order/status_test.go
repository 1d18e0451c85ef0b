package order_test

import (
	"testing"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []order.Status{order.Pending, order.Paid, order.Shipped, order.Cancelled, order.Deleted} {
		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	parsed, err := order.ParseStatus(" paid ")
	require.NoError(t, err)
	assert.Equal(t, order.Paid, parsed)

	_, err = order.ParseStatus("Unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	_, err = order.ParseStatus("Delivered")
	require.Error(t, err)
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, order.Pending.Validate())
	require.NoError(t, order.Deleted.Validate())
	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(42).Validate())
	assert.Equal(t, "Unknown", order.Status(42).String())
}

func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    order.Status
		move    func(order.Status) (order.Status, error)
		want    order.Status
		wantErr error
	}{
		{"pay pending", order.Pending, order.Status.Pay, order.Paid, nil},
		{"pay paid", order.Paid, order.Status.Pay, order.Unknown, order.ErrOrderNotPending},
		{"ship paid", order.Paid, order.Status.Ship, order.Shipped, nil},
		{"ship pending", order.Pending, order.Status.Ship, order.Unknown, order.ErrOrderShipping},
		{"cancel shipped", order.Shipped, order.Status.Cancel, order.Cancelled, nil},
		{"cancel cancelled", order.Cancelled, order.Status.Cancel, order.Unknown, order.ErrAlreadyCancelled},
		{"delete cancelled", order.Cancelled, order.Status.Delete, order.Deleted, nil},
		{"delete deleted", order.Deleted, order.Status.Delete, order.Unknown, order.ErrOrderDeleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.move(tt.from)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
