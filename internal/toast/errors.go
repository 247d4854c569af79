package toast

import (
	"errors"
	"fmt"
)

// ErrNoAccessToken marks a 200 login response that carried no token.
var ErrNoAccessToken = errors.New("authentication response contained no access token")

// AuthError is a failed login exchange. Status is zero on network failure.
type AuthError struct {
	Status int
	Body   string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %v", e.Err)
	}
	return fmt.Sprintf("authentication failed with status %d: %s", e.Status, e.Body)
}

func (e *AuthError) Unwrap() error { return e.Err }

// APIError is a non-2xx or network failure on a data call.
type APIError struct {
	URL    string
	Status int
	Body   string
	Err    error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("request to %s failed with status %d: %s", e.URL, e.Status, e.Body)
}

func (e *APIError) Unwrap() error { return e.Err }

// CacheError is a token/data cache write failure. Read failures are treated
// as cache misses and never surface as errors.
type CacheError struct {
	Path string
	Err  error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %s: %v", e.Path, e.Err)
}

func (e *CacheError) Unwrap() error { return e.Err }
