package riskapi

import (
	"fmt"
	"net/http"
)

// HTTPStatusError represents a non-2xx response from the scoring backend.
// Detail carries whatever the backend put in its error body, best effort;
// there is no structured error contract.
type HTTPStatusError struct {
	Status int
	Detail string
}

func (e *HTTPStatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned HTTP %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend returned HTTP %d %s", e.Status, http.StatusText(e.Status))
}

// DecodeError represents a response body that does not match the expected
// assessment shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding assessment: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
