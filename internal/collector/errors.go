package collector

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches a FetchError for a 404 response
var ErrNotFound = errors.New("not found")

// FetchError is returned when a GET does not end in HTTP 200 with a decodable body.
// StatusCode is 0 when no response was received.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("failed to retrieve %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("failed to retrieve %s: status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses
func (e *FetchError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
