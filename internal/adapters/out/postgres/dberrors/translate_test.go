package dberrors_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"orderservice/internal/adapters/out/postgres/dberrors"
	"orderservice/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	t.Parallel()

	t.Run("data exceptions are validation errors", func(t *testing.T) {
		for _, code := range []string{"22001", "22003", "22P02"} {
			pgErr := &pgconn.PgError{Code: code, Message: "value too long", ColumnName: "name"}

			err := dberrors.Translate(fmt.Errorf("insert: %w", pgErr))

			require.ErrorIs(t, err, dberrors.ErrDataRejected, code)
			assert.Equal(t, errs.KindValidation, errs.KindOf(err))
			assert.False(t, errs.Retryable(err))
			assert.ErrorAs(t, err, &pgErr)

			var coded *errs.Error
			require.ErrorAs(t, err, &coded)
			assert.Equal(t, []errs.Detail{{Field: "name", Message: "value too long"}}, coded.Details)
		}
	})

	t.Run("other server errors stay retryable", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "40001"}

		err := dberrors.Translate(pgErr)

		assert.Same(t, error(pgErr), err)
		assert.True(t, errs.Retryable(err))
	})

	t.Run("context errors become cancellations", func(t *testing.T) {
		err := dberrors.Translate(context.DeadlineExceeded)

		require.ErrorIs(t, err, errs.ErrCancelled)
	})

	t.Run("nil and plain errors pass through", func(t *testing.T) {
		require.NoError(t, dberrors.Translate(nil))

		plain := errors.New("connection reset")
		assert.Same(t, plain, dberrors.Translate(plain))
	})
}
