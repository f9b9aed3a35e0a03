package core

import (
	"errors"
	"fmt"
	"strings"
)

// Operational errors. Handlers map these onto stable HTTP classifications;
// anything not wrapping one of them is treated as an internal failure.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrBadRequest = errors.New("bad request")
)

// NotFoundf wraps ErrNotFound with a human-readable message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// Conflictf wraps ErrConflict with a human-readable message.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

// BadRequestf wraps ErrBadRequest with a human-readable message.
func BadRequestf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrBadRequest)...)
}

// ErrMessage returns an operational error's text without the sentinel suffix,
// suitable for a client-facing response.
func ErrMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{ErrNotFound, ErrConflict, ErrBadRequest} {
		if suffix := ": " + sentinel.Error(); strings.HasSuffix(msg, suffix) {
			return strings.TrimSuffix(msg, suffix)
		}
	}
	return msg
}
