package syncro

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse is wrapped by every error caused by a response body
// that does not have the expected shape.
var ErrMalformedResponse = errors.New("malformed response")

// maxErrorBody bounds how much of a response body ends up in an error message.
const maxErrorBody = 512

// APIError is returned when the API answers with a non-success status code.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       string
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}
	if body == "" {
		return fmt.Sprintf("syncro API %s %s failed with status %s", e.Method, e.URL, e.Status)
	}
	return fmt.Sprintf("syncro API %s %s failed with status %s: %s", e.Method, e.URL, e.Status, body)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
