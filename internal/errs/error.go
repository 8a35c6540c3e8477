package errs

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateBook   = errors.New("book is already in the collection")
	ErrNoBookID        = errors.New("book has no server id yet")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrSessionExpired  = errors.New("session expired")
)

// APIError carries the status code and message reported by the collection
// backend so the handler layer can surface them as-is.
type APIError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %d %s", e.Code, e.Message)
}

func NewAPIError(code int, message string) *APIError {
	if message == "" {
		message = "request failed"
	}
	return &APIError{Code: code, Message: message}
}
