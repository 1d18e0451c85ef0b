package order

import (
	"regexp"
	"unicode/utf8"

	"orderservice/internal/pkg/guard"
)

const nameLength = 5

var nameCharacters = regexp.MustCompile(`^[A-Z0-9]+$`)

// Name is the short human-facing order code, e.g. "AB123".
type Name struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewName checks the length first, then the alphabet.
func NewName(value string) (Name, error) {
	if n := utf8.RuneCountInString(value); n != nameLength {
		return Name{}, ErrInvalidNameLength.WithMessagef("order name must be exactly %d characters, got %d", nameLength, n)
	}
	if !nameCharacters.MatchString(value) {
		return Name{}, ErrInvalidNameChars
	}
	return Name{value: value, guard: guard.NewConstructorGuard()}, nil
}

func (n Name) Validate() error {
	return n.guard.Validate(ErrInvalidNameLength)
}

func (n Name) String() string {
	return n.value
}

func (n Name) Equal(other Name) bool {
	return n.value == other.value
}
