package risika

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxErrorBody caps how much of an error response body is kept.
const maxErrorBody = 64 << 10

// AuthError is returned when an access token cannot be obtained.
type AuthError struct {
	Err error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("risika: authenticate: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// APIError is returned when the API answers with a non-2xx status code.
type APIError struct {
	StatusCode int
	Body       []byte
	// RetryAfter is set for rate-limited responses that announced when to retry.
	RetryAfter time.Time
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("%s: %d, %v", http.StatusText(e.StatusCode), e.StatusCode, ErrStatus)
	}

	return fmt.Sprintf("%s: %d, %v: %s", http.StatusText(e.StatusCode), e.StatusCode, ErrStatus, e.Body)
}

// Unwrap allows matching against [ErrStatus] and, for 429 responses, [ErrRateLimit].
func (e *APIError) Unwrap() []error {
	if e.StatusCode == http.StatusTooManyRequests {
		return []error{ErrStatus, ErrRateLimit}
	}

	return []error{ErrStatus}
}

// newAPIError reads the (bounded) body of resp into an APIError.
// The caller still owns closing resp.Body.
func newAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	return &APIError{
		StatusCode: resp.StatusCode,
		Body:       body,
	}
}
