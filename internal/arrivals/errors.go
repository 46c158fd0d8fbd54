package arrivals

import (
	"errors"
	"fmt"
)

// ErrNotImplemented is returned by a stop that was never given a concrete provider.
var ErrNotImplemented = errors.New("loadArrivals needs to be overridden")

// UnreachableError is a transport-level failure talking to a provider
// (DNS, timeout, connection refused).
type UnreachableError struct {
	Provider string
	Err      error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("Failed to contact %s: %v", e.Provider, e.Err)
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}

// BadResponseError is a non-success status code from a provider.
type BadResponseError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *BadResponseError) Error() string {
	return fmt.Sprintf("Bad response from %s: (%d) %s", e.Provider, e.StatusCode, e.Body)
}

// MalformedEntryError marks a single record inside an otherwise good
// response that could not be normalized. It is logged and the record skipped.
type MalformedEntryError struct {
	Index int
	Value string
	Err   error
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("entry %d: cannot normalize %q: %v", e.Index, e.Value, e.Err)
}

func (e *MalformedEntryError) Unwrap() error {
	return e.Err
}

// IsProviderError reports whether err came from talking to an upstream provider,
// as opposed to a configuration or integration bug.
func IsProviderError(err error) bool {
	var unreachable *UnreachableError
	var badResponse *BadResponseError
	return errors.As(err, &unreachable) || errors.As(err, &badResponse)
}
