package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failure reported by the backend: either a non-2xx status or an
// envelope with success=false. Message carries the server-provided text when
// one was present so the UI can surface it verbatim.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status != 0 {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return "request failed"
}

// IsUnauthorized reports whether err is a server rejection with status 401.
// There is no automatic re-auth; callers only use this to adjust messaging.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
