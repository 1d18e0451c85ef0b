package order

import (
	"fmt"
	"strings"

	"orderservice/internal/pkg/errs"
)

// Status is the lifecycle state of an order. It is persisted by name.
type Status int

const (
	// Unknown is the zero value and never a valid state.
	Unknown Status = iota
	Pending
	Paid
	Shipped
	Cancelled
	Deleted
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Paid:      "Paid",
		Shipped:   "Shipped",
		Cancelled: "Cancelled",
		Deleted:   "Deleted",
	}
}

// ParseStatus resolves a status name case-insensitively.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(name, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Deleted {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateModifiable fails unless items may still change.
func (s Status) ValidateModifiable() error {
	if s != Pending {
		return ErrOrderNotPending.WithMessagef("order is %s, only pending orders can be modified", s)
	}
	return nil
}

// Pay moves Pending to Paid.
func (s Status) Pay() (Status, error) {
	if s != Pending {
		return Unknown, ErrOrderNotPending.WithMessagef("order is %s, only pending orders can be paid", s)
	}
	return Paid, nil
}

// Ship moves Paid to Shipped.
func (s Status) Ship() (Status, error) {
	if s != Paid {
		return Unknown, ErrOrderShipping.WithMessagef("order is %s, only paid orders can be shipped", s)
	}
	return Shipped, nil
}

// Cancel is accepted from every state except Cancelled, including Paid and Shipped.
func (s Status) Cancel() (Status, error) {
	if s == Cancelled {
		return Unknown, ErrAlreadyCancelled
	}
	return Cancelled, nil
}

// Delete is accepted from every state except Deleted.
func (s Status) Delete() (Status, error) {
	if s == Deleted {
		return Unknown, ErrOrderDeleted
	}
	return Deleted, nil
}
