package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnsuccessful is wrapped by DecodeError when the upstream reports
// "success": false and the client requires success.
var ErrUnsuccessful = errors.New("upstream reported success=false")

// TransportError indicates the request did not produce a usable response:
// network failure, timeout, or a non-2xx status.
type TransportError struct {
	StatusCode int    // 0 when no response was received
	Body       []byte // Response body for non-2xx statuses
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("bazaar transport error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("bazaar transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError indicates the response body does not match the expected schema.
type DecodeError struct {
	Fields []string // JSON paths of missing or invalid fields, if known
	Err    error
}

func (e *DecodeError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("bazaar decode error: invalid fields %s", strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("bazaar decode error: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
