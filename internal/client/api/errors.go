package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	// Detail is the "detail" string of the error body, if any.
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// AsStatus unwraps a *StatusError from err.
func AsStatus(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// Detail returns the server-supplied detail carried by err, or "".
func Detail(err error) string {
	if se, ok := AsStatus(err); ok {
		return se.Detail
	}
	return ""
}

// IsUnauthorized reports a 401 answer.
func IsUnauthorized(err error) bool {
	se, ok := AsStatus(err)
	return ok && se.StatusCode == http.StatusUnauthorized
}

// parseDetail extracts a string "detail" field from an error body. Any other
// shape (validation lists, HTML, empty body) yields "".
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		return ""
	}
	return detail
}
