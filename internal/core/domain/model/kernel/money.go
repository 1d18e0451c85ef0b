package kernel

import (
	"strings"

	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a caller does not name a currency.
const DefaultCurrency = "USD"

var (
	ErrInvalidPrice     = errs.New(errs.KindValidation, "INVALID_PRICE", "price must be greater than zero")
	ErrInvalidCurrency  = errs.New(errs.KindValidation, "INVALID_CURRENCY", "currency must be a three-letter code")
	ErrAmountTooLarge   = errs.New(errs.KindValidation, "AMOUNT_TOO_LARGE", "amount exceeds the supported range")
	ErrCurrencyMismatch = errs.New(errs.KindDomain, "CURRENCY_MISMATCH", "amounts are in different currencies")

	ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or ZeroMoney")
)

// Money is a decimal amount in a single currency.
type Money struct { //nolint:recvcheck //using for validation
	amount   decimal.Decimal
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney builds a strictly positive amount with at most MaxScale decimal places.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if !amount.IsPositive() {
		return Money{}, ErrInvalidPrice.WithMessagef("price must be greater than zero, got %s", amount.String())
	}
	if !FitsAmount(amount) {
		return Money{}, ErrInvalidPrice.WithMessagef(
			"price must have at most %d decimal places and stay below %s, got %s",
			MaxScale, maxAmount.String(), amount.String())
	}

	currency = normalizeCurrency(currency)
	if !isCurrencyCode(currency) {
		return Money{}, ErrInvalidCurrency.WithMessagef("currency must be a three-letter code, got %q", currency)
	}

	return Money{amount: amount, currency: currency, guard: guard.NewConstructorGuard()}, nil
}

// ZeroMoney is the baseline for sums. A blank currency falls back to DefaultCurrency.
func ZeroMoney(currency string) Money {
	currency = normalizeCurrency(currency)
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{amount: decimal.Zero, currency: currency, guard: guard.NewConstructorGuard()}
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Add sums two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch.WithMessagef("cannot add %s to %s", other.currency, m.currency)
	}

	sum := m.amount.Add(other.amount)
	if !FitsAmount(sum) {
		return Money{}, ErrAmountTooLarge.WithMessagef("total %s exceeds the supported range", sum.String())
	}

	return Money{amount: sum, currency: m.currency, guard: guard.NewConstructorGuard()}, nil
}

// Multiply scales the amount by a quantity.
func (m Money) Multiply(q Quantity) Money {
	factor := decimal.NewFromInt(int64(q.Value()))
	return Money{amount: m.amount.Mul(factor), currency: m.currency, guard: guard.NewConstructorGuard()}
}

// Equal compares amounts numerically, so 10.5 and 10.50 are equal.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}

func normalizeCurrency(currency string) string {
	return strings.ToUpper(strings.TrimSpace(currency))
}

func isCurrencyCode(currency string) bool {
	if len(currency) != 3 {
		return false
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
