package common

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a referenced category or item no longer exists.
var ErrNotFound = errors.New("not found")

// ValidationError reports caller-supplied input that fails a precondition.
// The operation is never attempted against the gateway.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// GatewayError wraps any failure from the persistence gateway. It is never
// retried automatically; the underlying cause is surfaced verbatim.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway: %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// UploadError wraps an image storage failure. A record write that depends
// on the upload must abort rather than proceed with a missing reference.
type UploadError struct {
	Object string
	Err    error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Object, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
