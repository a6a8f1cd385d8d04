package store

import (
	"errors"
	"fmt"
	"strings"
)

// RequestError wraps a transport-level failure: the request never reached
// the store or no response came back. It is surfaced as a transient
// notification; the user must re-trigger the action, no automatic retry.
type RequestError struct {
	Op  string
	URL string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// NotFoundError indicates the store has no record at the requested path.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Path)
}

// FieldError is one field-level rejection reported by the store.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the structured field-level rejections the store
// returns for an invalid write.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}

	return "validation rejected: " + strings.Join(parts, "; ")
}

// Fields returns the rejections as a field → message map.
func (e *ValidationError) Fields() map[string]string {
	out := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		out[fe.Field] = fe.Message
	}

	return out
}

// StatusError is any other non-2xx response without a structured body.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("store error (status %d): %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a missing-record failure.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// AsValidation unpacks a structured validation rejection, if err is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}

	return nil, false
}
