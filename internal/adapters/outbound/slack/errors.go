package slack

import (
	"errors"
	"fmt"
)

var (
	ErrHTTPStatus         = errors.New("slack api http status")
	ErrUnexpectedResponse = errors.New("unexpected slack response")
	ErrUploadLogs         = errors.New("upload container logs")
	ErrPostMessage        = errors.New("post message")
)

// APIError is a response with "ok": false.
type APIError struct {
	Method string
	Code   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("slack %s: response is not ok: %s", e.Method, e.Code)
}
