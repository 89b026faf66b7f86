package remoteaccess

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTokenKind is returned for a token kind other than user or command.
	ErrUnknownTokenKind = errors.New("remoteaccess: unknown token kind")

	// ErrTokenFetch wraps failures of the identity provider.
	ErrTokenFetch = errors.New("remoteaccess: token fetch failed")

	// ErrUnauthorized is returned when the API rejects a freshly fetched token.
	ErrUnauthorized = errors.New("remoteaccess: unauthorized")

	ErrUnexpectedStatus = errors.New("remoteaccess: unexpected status")
	ErrInvalidResponse  = errors.New("remoteaccess: invalid response body")
)

// StatusError carries the status code of a failed API call.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s returned %d", ErrUnexpectedStatus, e.Op, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == 401 {
		return ErrUnauthorized
	}
	return ErrUnexpectedStatus
}
