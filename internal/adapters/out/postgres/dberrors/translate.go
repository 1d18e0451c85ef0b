// Package dberrors classifies driver errors returned by the Postgres store.
package dberrors

import (
	"errors"
	"strings"

	"orderservice/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// classDataException is the SQLSTATE class for values a column cannot hold:
// overlong strings, numeric overflow, invalid text representation and so on.
const classDataException = "22"

// ErrDataRejected means the store refused a value. Repeating the write cannot succeed.
var ErrDataRejected = errs.New(errs.KindValidation, "DATA_REJECTED", "value does not fit the stored column")

// Translate maps data exceptions onto ErrDataRejected and context errors onto
// errs.ErrCancelled. Anything else is returned unchanged.
func Translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, classDataException) {
		rejected := ErrDataRejected.WithCause(err)
		if pgErr.ColumnName != "" {
			rejected.Details = []errs.Detail{{Field: pgErr.ColumnName, Message: pgErr.Message}}
		}
		return rejected
	}
	return errs.FromContext(err)
}
