package api

import (
	"errors"
	"fmt"
)

// ErrEmptyQuery is returned before any request is sent when the trimmed
// query is empty.
var ErrEmptyQuery = errors.New("empty search query")

// APIError is an application-level failure reported by the remote API: an
// "error" field in the body, or a non-success status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP error: %d", e.StatusCode)
}

// TransportError wraps network and decoding failures. Its text is never
// shown to the user.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
