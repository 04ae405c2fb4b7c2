// Package bankerr defines the business errors returned by the command and
// query services. They are recovered at the HTTP boundary and turned into a
// client-facing message; none of them is fatal.
package bankerr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindAuth
	KindInsufficientFunds
	KindConflict
	KindInvalidAmount
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindInsufficientFunds:
		return "insufficient_funds"
	case KindConflict:
		return "conflict"
	case KindInvalidAmount:
		return "invalid_amount"
	default:
		return "unknown"
	}
}

// Error is a business rule violation with a message safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches sentinels by kind, so errors.Is(err, ErrConflict) holds for any
// conflict regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrAuth              = &Error{Kind: KindAuth}
	ErrInsufficientFunds = &Error{Kind: KindInsufficientFunds}
	ErrConflict          = &Error{Kind: KindConflict}
	ErrInvalidAmount     = &Error{Kind: KindInvalidAmount}
)

func Validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Auth(msg string) error { return &Error{Kind: KindAuth, Message: msg} }

func InsufficientFunds(format string, args ...any) error {
	return &Error{Kind: KindInsufficientFunds, Message: fmt.Sprintf(format, args...)}
}

func Conflict(msg string) error { return &Error{Kind: KindConflict, Message: msg} }

func InvalidAmount(msg string) error { return &Error{Kind: KindInvalidAmount, Message: msg} }

// As returns the business error wrapped in err, if any.
func As(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
