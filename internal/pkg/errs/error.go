package errs

import (
	"context"
	"errors"
	"fmt"
)

// Kind groups errors by how callers are expected to react to them.
type Kind uint8

const (
	// KindInternal covers infrastructure and unexpected failures. The zero value.
	KindInternal Kind = iota
	// KindValidation means the caller sent malformed or incomplete input.
	KindValidation
	// KindDomain means a business rule rejected the operation.
	KindDomain
	// KindNotFound means the addressed entity does not exist.
	KindNotFound
	// KindDuplicate means the entity already exists.
	KindDuplicate
	// KindConflict means a concurrent writer changed the entity first.
	KindConflict
	// KindCancelled means the operation's context was cancelled or timed out.
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDomain:
		return "domain"
	case KindNotFound:
		return "not_found"
	case KindDuplicate:
		return "duplicate"
	case KindConflict:
		return "conflict"
	case KindCancelled:
		return "cancelled"
	case KindInternal:
		return "internal"
	}
	return "internal"
}

const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeCancelled           = "CANCELLED"
	CodeInternal            = "INTERNAL_ERROR"
)

var (
	// ErrConcurrencyConflict is returned when an optimistic version check fails.
	ErrConcurrencyConflict = New(KindConflict, CodeConcurrencyConflict, "entity was modified by another operation")

	// ErrCancelled is returned when the caller's context is done before the operation finishes.
	ErrCancelled = New(KindCancelled, CodeCancelled, "operation was cancelled")
)

// Detail names one offending field of a validation error.
type Detail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a classified error with a stable code.
//
// Package level values of *Error act as sentinels: errors.Is matches any
// *Error carrying the same Kind and Code, so a specialised copy produced by
// WithMessagef or WithCause still satisfies errors.Is(err, Sentinel).
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details []Detail
	Cause   error
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// NewValidationError wraps cause as a VALIDATION_ERROR. Field errors found in
// cause are turned into details.
func NewValidationError(cause error, details ...Detail) *Error {
	details = append(details, collectDetails(cause)...)
	return &Error{
		Kind:    KindValidation,
		Code:    CodeValidation,
		Message: "request validation failed",
		Details: details,
		Cause:   cause,
	}
}

func (e *Error) Error() string {
	msg := e.Code + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Code == e.Code
}

// WithMessagef returns a copy of e with a more specific message.
func (e *Error) WithMessagef(format string, args ...any) *Error {
	c := *e
	c.Message = fmt.Sprintf(format, args...)
	return &c
}

// WithCause returns a copy of e wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	c := *e
	c.Cause = cause
	return &c
}

// KindOf classifies err. Unknown errors are KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}

	var coded *Error
	if errors.As(err, &coded) {
		return coded.Kind
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCancelled
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	}
	return KindInternal
}

// CodeOf returns the stable code of err, falling back to a code derived from its kind.
func CodeOf(err error) string {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}

	switch KindOf(err) {
	case KindCancelled:
		return CodeCancelled
	case KindNotFound:
		return "NOT_FOUND"
	case KindValidation:
		return CodeValidation
	case KindInternal, KindDomain, KindDuplicate, KindConflict:
	}
	return CodeInternal
}

// Retryable reports whether repeating the same operation later may succeed.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindInternal, KindConflict, KindCancelled:
		return true
	case KindValidation, KindDomain, KindNotFound, KindDuplicate:
	}
	return false
}

// FromContext converts a context error into ErrCancelled and leaves any other error untouched.
func FromContext(err error) error {
	var coded *Error
	if err == nil || errors.As(err, &coded) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ErrCancelled.WithCause(err)
	}
	return err
}

func collectDetails(err error) []Detail {
	if err == nil {
		return nil
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var details []Detail
		for _, e := range joined.Unwrap() {
			details = append(details, collectDetails(e)...)
		}
		return details
	}

	var (
		required *ValueIsRequiredError
		invalid  *ValueIsInvalidError
		outRange *ValueIsOutOfRangeError
		coded    *Error
	)
	switch {
	case errors.As(err, &required):
		return []Detail{{Field: required.ParamName, Message: "is required"}}
	case errors.As(err, &invalid):
		return []Detail{{Field: invalid.ParamName, Message: detailMessage("is invalid", invalid.Cause)}}
	case errors.As(err, &outRange):
		return []Detail{{Field: outRange.ParamName, Message: "is out of range"}}
	case errors.As(err, &coded):
		if len(coded.Details) > 0 {
			return coded.Details
		}
		return []Detail{{Field: coded.Code, Message: coded.Message}}
	}
	return nil
}

func detailMessage(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return msg + ": " + cause.Error()
}
