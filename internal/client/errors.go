// ABOUTME: Error taxonomy for storefront API responses
// ABOUTME: Distinguishes validation, authorization, and transport failures

package client

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is any non-2xx response that is not a validation failure.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return e.Message
}

// EntityError is an HTTP 422 response carrying per-field validation
// messages. Form views surface Fields inline; everything else shows
// Message.
type EntityError struct {
	Message string
	Fields  map[string]string
}

func (e *EntityError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	for _, msg := range e.Fields {
		return msg
	}
	return "unprocessable request"
}

// FieldError returns the validation message for a field, if any
func (e *EntityError) FieldError(name string) string {
	return e.Fields[name]
}

// IsUnauthorized reports whether err is a session-fatal 401
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// AsEntityError unwraps a validation error, or returns nil
func AsEntityError(err error) *EntityError {
	var entityErr *EntityError
	if errors.As(err, &entityErr) {
		return entityErr
	}
	return nil
}
