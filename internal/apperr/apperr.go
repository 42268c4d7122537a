// Package apperr defines the service error taxonomy shared by the storage
// services and the HTTP boundary. Server-side kinds (Storage, Pool) carry a
// generic user-facing message; the wrapped cause is for logs only.
package apperr

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Kind classifies an Error for boundary rendering.
type Kind int

const (
	KindBadRequest Kind = iota
	KindUnauthorized
	KindNotFound
	KindConflict
	KindValidation
	KindStorage
	KindPool
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindStorage:
		return "storage"
	case KindPool:
		return "pool"
	default:
		return "unknown"
	}
}

// Error is a classified service failure. Message is safe to show to the
// caller for client-side kinds; Err holds the internal cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ServerSide reports whether the error maps to a 5xx status family.
func (e *Error) ServerSide() bool {
	return e.Kind == KindStorage || e.Kind == KindPool
}

func BadRequest(format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: "a database operation failed", Err: err}
}

func Pool(err error) *Error {
	return &Error{Kind: KindPool, Message: "could not obtain a database connection", Err: err}
}

// FromDB folds a gorm error into the taxonomy. Record-not-found keeps the
// caller-supplied NotFound message so ownership misses and nonexistent ids
// stay indistinguishable.
func FromDB(err error, notFoundMsg string) *Error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound("%s", notFoundMsg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict("record already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return Validation("operation references a record that does not exist")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return Pool(err)
	default:
		return Storage(err)
	}
}

// As unwraps err into an *Error, or wraps it as Storage if it is not one.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Storage(err)
}
