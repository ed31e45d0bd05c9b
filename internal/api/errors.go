package api

import (
	"errors"
	"fmt"
)

// ErrNotSuggestion is returned when the AI endpoint answers with anything
// other than a JSON array of clothing items.
var ErrNotSuggestion = errors.New("suggestion response is not an item list")

// StatusError is a non-2xx answer from the backend. The backend does not
// publish structured error codes, so the status is all callers get.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}
