package wandbox

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StatusError is returned when the server responds with a non-2xx status.
// The caller receives no partial data; nothing is retried by this layer.
type StatusError struct {
	// StatusCode is the HTTP status the server responded with.
	StatusCode int

	// URL is the fully-qualified request URL.
	URL string

	// Body is the raw response body, capped at a few kilobytes.
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("wandbox: %s returned %d: %s", e.URL, e.StatusCode, extractErrorMessage(e.Body))
}

// DecodeError is returned when a response body cannot be parsed under its
// declared content type or encoding.
type DecodeError struct {
	// ContentType is the declared Content-Type of the response.
	ContentType string

	// Err is the underlying parse failure, if any.
	Err error

	msg string
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wandbox: decode %q response: %v", e.ContentType, e.Err)
	}
	return fmt.Sprintf("wandbox: decode %q response: %s", e.ContentType, e.msg)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// extractErrorMessage pulls a human-readable message out of an error
// response body. JSON bodies with an "error" field yield that field;
// anything else falls back to the raw body.
func extractErrorMessage(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return "(empty error body)"
	}

	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}

	return body
}
