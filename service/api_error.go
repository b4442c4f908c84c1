package service

import (
	"fmt"
	"net/http"
)

// maxAPIErrorBody bounds the response body kept for diagnostics.
const maxAPIErrorBody = 512

// APIError describes a failed outbound HTTP call. StatusCode is 0 when no response was received.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

// NewAPIError captures the call details. body is truncated to maxAPIErrorBody bytes.
func NewAPIError(method, url string, statusCode int, body []byte, err error) *APIError {
	if len(body) > maxAPIErrorBody {
		body = body[:maxAPIErrorBody]
	}
	return &APIError{
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Body:       string(body),
		Err:        err,
	}
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}
	msg := fmt.Sprintf("%s %s: status %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ", body: " + e.Body
	}
	if e.Err != nil {
		msg += fmt.Sprintf(", err: %v", e.Err)
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.Err
}
