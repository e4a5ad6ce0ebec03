// Package apperrors defines the failure kinds surfaced by the file registry
// and the transfer pipeline.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindForbidden       Kind = "forbidden"
	KindInvalidArgument Kind = "invalid_argument"
	KindPersistence     Kind = "persistence"
	KindUploadFailed    Kind = "upload_failed"
	KindDeleteFailed    Kind = "delete_failed"
	KindTransfer        Kind = "transfer_error"
	KindBlobMissing     Kind = "blob_missing"
	KindPartialDelete   Kind = "partial_delete"
	KindInternal        Kind = "internal"
)

// Sentinels for errors.Is; any *Error with the same Kind matches.
var (
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrForbidden       = &Error{Kind: KindForbidden}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrPersistence     = &Error{Kind: KindPersistence}
	ErrUploadFailed    = &Error{Kind: KindUploadFailed}
	ErrDeleteFailed    = &Error{Kind: KindDeleteFailed}
	ErrTransfer        = &Error{Kind: KindTransfer}
	ErrBlobMissing     = &Error{Kind: KindBlobMissing}
	ErrPartialDelete   = &Error{Kind: KindPartialDelete}
)

type Error struct {
	Kind    Kind
	Op      string // e.g. "registry.get"
	Message string // safe to show to callers
	Err     error  // underlying cause, never shown to callers
}

func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

func Wrap(kind Kind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns a caller-safe message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Internal server error"
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
