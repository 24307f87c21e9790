package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// APIError is a non-2xx upstream response, carrying the structured
// status code and any field-level validation detail instead of a
// stringified blob; the message still embeds both for display.
type APIError struct {
	StatusCode int
	Method     string
	Endpoint   string
	// Detail is the upstream's human-readable error when it sent one.
	Detail string
	// Fields holds field-level validation errors when present.
	Fields map[string]string
	// Body is the raw (or serialized) error payload.
	Body string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream %s %s: %d: %s", e.Method, e.Endpoint, e.StatusCode, e.Body)
}

func (e *APIError) ClientError() bool { return e.StatusCode >= 400 && e.StatusCode < 500 }
func (e *APIError) ServerError() bool { return e.StatusCode >= 500 }

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	apiErr, ok := errors.Cause(err).(*APIError)
	return ok && apiErr.StatusCode == 404
}

func newAPIError(method, endpoint string, status int, body []byte) *APIError {
	e := &APIError{
		StatusCode: status,
		Method:     method,
		Endpoint:   endpoint,
		Body:       string(body),
	}

	var payload struct {
		Detail string            `json:"detail"`
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Detail = payload.Detail
		if e.Detail == "" {
			e.Detail = payload.Error
		}
		e.Fields = payload.Fields
	}
	if e.Detail == "" {
		// not JSON (or no known field): fall back to the raw text
		e.Detail = string(body)
	}
	return e
}
