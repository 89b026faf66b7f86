package statequery

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery is returned for any query the compiler cannot translate.
	ErrInvalidQuery = errors.New("statequery: invalid query")

	// ErrMalformedJSON is returned by Parse when the input is not valid JSON.
	// It wraps into ErrInvalidQuery when surfaced through CompileJSON.
	ErrMalformedJSON = errors.New("statequery: malformed json")
)

// QueryError describes where in the query compilation failed.
type QueryError struct {
	// Key is the member key being compiled when the error occurred, if any.
	Key string
	// Reason is a human readable explanation suitable for a 400 response body.
	Reason string
}

func (e *QueryError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidQuery, e.Reason)
	}
	return fmt.Sprintf("%s: %q: %s", ErrInvalidQuery, e.Key, e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidQuery) match.
func (e *QueryError) Unwrap() error {
	return ErrInvalidQuery
}

func invalid(key, format string, args ...any) error {
	return &QueryError{Key: key, Reason: fmt.Sprintf(format, args...)}
}
