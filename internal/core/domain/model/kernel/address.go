package kernel

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var (
	ErrInvalidAddress = errs.New(errs.KindValidation, "INVALID_ADDRESS", "address is incomplete")

	ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")
)

const maxPostalCodeLength = 32

// Address is a shipping destination. Every component is required.
type Address struct { //nolint:recvcheck //using for validation
	street     string
	city       string
	state      string
	postalCode string
	country    string
	guard      guard.ConstructorGuard
}

func NewAddress(street, city, state, postalCode, country string) (Address, error) {
	addr := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setAddressPart(&addr.street, "street", street, MaxTextLength),
		setAddressPart(&addr.city, "city", city, MaxTextLength),
		setAddressPart(&addr.state, "state", state, MaxTextLength),
		setAddressPart(&addr.postalCode, "postalCode", postalCode, maxPostalCodeLength),
		setAddressPart(&addr.country, "country", country, MaxTextLength),
	); err != nil {
		return Address{}, err
	}

	return addr, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Street() string {
	return a.street
}

func (a Address) City() string {
	return a.city
}

func (a Address) State() string {
	return a.state
}

func (a Address) PostalCode() string {
	return a.postalCode
}

func (a Address) Country() string {
	return a.country
}

func (a Address) Equal(other Address) bool {
	return a == other
}

func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s %s, %s", a.street, a.city, a.state, a.postalCode, a.country)
}

func setAddressPart(dst *string, field, value string, maxLength int) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return ErrInvalidAddress.WithMessagef("%s is required", field)
	}
	if n := utf8.RuneCountInString(value); n > maxLength {
		return ErrInvalidAddress.WithMessagef("%s must be at most %d characters, got %d", field, maxLength, n)
	}
	*dst = value
	return nil
}
