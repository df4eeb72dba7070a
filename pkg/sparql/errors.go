package sparql

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyQuery is returned when the caller submits a blank query.
var ErrEmptyQuery = errors.New("sparql: query must be a non-empty string")

// InvalidQueryError is returned when a query fails parsing or uses a
// disallowed operation. It is always detected before any network call.
type InvalidQueryError struct {
	// Reason describes why the query was rejected
	Reason string

	// Err holds the underlying parser diagnostic, when one exists
	Err error
}

func (e *InvalidQueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sparql: invalid query: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("sparql: invalid query: %s", e.Reason)
}

func (e *InvalidQueryError) Unwrap() error { return e.Err }

// TransportError is returned when the store could not be reached at all.
type TransportError struct {
	// Query is the executed query text, kept for diagnostics
	Query string

	// Err is the underlying connection error
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sparql: store unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StoreError is returned when the store was reached but answered with a
// failure status.
type StoreError struct {
	// StatusCode is the HTTP status returned by the store
	StatusCode int

	// Body is the response body, usually the store's own diagnostic
	Body string

	// Query is the executed query text, kept for diagnostics
	Query string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("sparql: store returned status %d: %s", e.StatusCode, e.Body)
}

// ShapeError is returned when result rows omit fields the caller declared
// as required. The query was valid but semantically incomplete.
type ShapeError struct {
	// Missing lists the required fields absent from the offending row
	Missing []string

	// Row is the zero-based index of the offending row
	Row int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("sparql: result row %d is missing required fields [%s]; project these variables in the query",
		e.Row, strings.Join(e.Missing, ", "))
}
