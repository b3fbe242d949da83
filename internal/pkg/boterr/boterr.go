package boterr

import (
	"errors"
	"fmt"
)

// Kind classifies a handler failure for user-facing translation.
type Kind int

const (
	KindUnexpected Kind = iota
	KindUninitializedUser
	KindValidation
	KindProviderFetch
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindUninitializedUser:
		return "uninitialized_user"
	case KindValidation:
		return "validation"
	case KindProviderFetch:
		return "provider_fetch"
	case KindNotFound:
		return "not_found"
	default:
		return "unexpected"
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func Validation(msg string) *Error {
	return New(KindValidation, msg)
}

func NotFound(msg string) *Error {
	return New(KindNotFound, msg)
}

func ProviderFetch(msg string, err error) *Error {
	return Wrap(KindProviderFetch, msg, err)
}

func UninitializedUser() *Error {
	return New(KindUninitializedUser, "user has not started the bot yet")
}

// KindOf extracts the failure kind; anything unclassified is unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}
