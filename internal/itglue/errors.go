package itglue

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingCredentials is returned when no API key could be resolved from
// any configured source.
var ErrMissingCredentials = errors.New("no IT Glue API key configured (set " + EnvAPIKey + " or " + EnvAPIKeyFallback + ")")

// HTTPError reports a non-2xx response from the IT Glue API. It carries the
// status code and the raw response body.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("IT Glue API returned HTTP %d: %s", e.Status, e.Body)
}

// APIError reports error objects carried inside a response envelope. The API
// can return these even with a 2xx status.
type APIError struct {
	Messages []string
}

func (e *APIError) Error() string {
	return "IT Glue API error: " + strings.Join(e.Messages, "; ")
}
