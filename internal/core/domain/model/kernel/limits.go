package kernel

import (
	"math"

	"github.com/shopspring/decimal"
)

// Storage bounds shared by every value that ends up in a numeric(19,4), int or
// varchar(255) column.
const (
	MaxScale      = 4
	MaxQuantity   = math.MaxInt32
	MaxTextLength = 255
)

// maxAmount is the first value numeric(19,4) cannot hold.
var maxAmount = decimal.New(1, 19-MaxScale)

// FitsAmount reports whether amount is storable without rounding or overflow.
func FitsAmount(amount decimal.Decimal) bool {
	if !amount.Truncate(MaxScale).Equal(amount) {
		return false
	}
	return amount.Abs().LessThan(maxAmount)
}
