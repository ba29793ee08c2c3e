package statsapi

import (
	"errors"
	"fmt"
)

// ErrMalformedEnvelope is returned when the /stats response is not an
// envelope with a JSON string body.
var ErrMalformedEnvelope = errors.New("API returned unexpected response structure")

// HTTPError is a non-2xx response from the stats API.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error %d: %s", e.StatusCode, e.Body)
}

// BackendError is an {"error": "..."} document returned inside the envelope body.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return "Backend error: " + e.Message
}
